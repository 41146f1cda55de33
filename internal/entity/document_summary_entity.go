package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentSummary struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	Content    string
	Degraded   bool // true when the content is the canned fallback
	CreatedAt  time.Time
}
