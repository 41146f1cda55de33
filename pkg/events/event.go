package events

import (
	"time"

	"github.com/google/uuid"
)

// Document lifecycle event codes.
const (
	TypeDocumentUploaded    = "DOCUMENT_UPLOADED"
	TypeDocumentProcessed   = "DOCUMENT_PROCESSED"
	TypeDocumentsDeleted    = "DOCUMENTS_DELETED"
	TypeSummaryCreated      = "SUMMARY_CREATED"
	TypeRiskAnalysisCreated = "RISK_ANALYSIS_CREATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_UPLOADED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewDocumentUploaded(documentId, userId uuid.UUID, fileName string) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"user_id":     userId.String(),
			"file_name":   fileName,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentProcessed(documentId uuid.UUID, chunksInserted, failedChunks int) Event {
	return BaseEvent{
		Type: TypeDocumentProcessed,
		Data: map[string]interface{}{
			"document_id":     documentId.String(),
			"chunks_inserted": chunksInserted,
			"failed_chunks":   failedChunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentsDeleted(userId uuid.UUID, documents, chunks int64) Event {
	return BaseEvent{
		Type: TypeDocumentsDeleted,
		Data: map[string]interface{}{
			"user_id":   userId.String(),
			"documents": documents,
			"chunks":    chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewSummaryCreated(documentId uuid.UUID, degraded bool) Event {
	return BaseEvent{
		Type: TypeSummaryCreated,
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"degraded":    degraded,
		},
		OccurredAt: time.Now(),
	}
}

func NewRiskAnalysisCreated(documentId uuid.UUID, degraded bool) Event {
	return BaseEvent{
		Type: TypeRiskAnalysisCreated,
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"degraded":    degraded,
		},
		OccurredAt: time.Now(),
	}
}
