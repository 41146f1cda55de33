package entity

import (
	"time"

	"github.com/google/uuid"
)

// Embedding sources recorded per chunk so degraded (hash fallback)
// vectors stay diagnosable.
const (
	EmbeddingSourceProvider = "provider"
	EmbeddingSourceHash     = "hash"
)

type DocumentChunk struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId      uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex      int       // 0-based position in the document
	ChunkText       string
	Embedding       []float32 // nil until background embedding lands
	EmbeddingSource string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
