package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentRiskAnalysis struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	Content    string // HTML produced by the model (or canned skeleton)
	Degraded   bool
	CreatedAt  time.Time
}
