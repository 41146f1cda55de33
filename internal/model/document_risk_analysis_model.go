package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentRiskAnalysis struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	Degraded   bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocumentRiskAnalysis) TableName() string {
	return "document_risk_analyses"
}
