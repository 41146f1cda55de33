package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
}

type ProcessDocumentRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Text       string    `json:"text" validate:"required"`
}

type ProcessDocumentResponse struct {
	DocumentId     uuid.UUID `json:"document_id"`
	ChunksInserted int       `json:"chunks_inserted"`
	TotalChunks    int       `json:"total_chunks"`
	FailedChunks   int       `json:"failed_chunks"`
	ProcessingTime float64   `json:"processing_time"` // seconds
}

type DocumentItemResponse struct {
	Id        uuid.UUID  `json:"id"`
	FileName  string     `json:"file_name"`
	FileType  string     `json:"file_type"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type DeleteDocumentsResponse struct {
	DocumentsDeleted int64 `json:"documents_deleted"`
	ChunksDeleted    int64 `json:"chunks_deleted"`
	SummariesDeleted int64 `json:"summaries_deleted"`
	AnalysesDeleted  int64 `json:"analyses_deleted"`
}

// PublishEmbedDocumentMessage is the background embedding job payload.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
