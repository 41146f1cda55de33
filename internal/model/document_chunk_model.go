package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunk struct {
	Id              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ChunkIndex      int              `gorm:"not null;default:0"` // 0-based index for ordering
	ChunkText       string           `gorm:"type:text;not null"`
	Embedding       *pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2 uses 384 dimensions
	EmbeddingSource string           `gorm:"type:varchar(16)"`
	CreatedAt       time.Time        `gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt   `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
