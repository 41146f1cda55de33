package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type DocumentOwnedByUser struct {
	UserID uuid.UUID
}

func (s DocumentOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("documents.user_id = ?", s.UserID)
}

type ByFileType struct {
	FileType string
}

func (s ByFileType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_type = ?", s.FileType)
}

// OrderByChunkIndex keeps chunks in document order.
type OrderByChunkIndex struct{}

func (s OrderByChunkIndex) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chunk_index ASC")
}
