package dto

import "github.com/google/uuid"

type SummarizeRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

type SummarizeResponse struct {
	SummaryId  uuid.UUID `json:"summary_id"`
	DocumentId uuid.UUID `json:"document_id"`
	Summary    string    `json:"summary"`
	Degraded   bool      `json:"degraded"`
}

type RiskAnalysisRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

type RiskAnalysisResponse struct {
	AnalysisId uuid.UUID `json:"analysis_id"`
	DocumentId uuid.UUID `json:"document_id"`
	Analysis   string    `json:"analysis"`
	Degraded   bool      `json:"degraded"`
}

type QueryRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Query      string    `json:"query" validate:"required"`
	UseRag     bool      `json:"use_rag"`
}

// Query answer provenance.
const (
	QuerySourceRag   = "rag"   // similarity-retrieved context
	QuerySourceApi   = "api"   // direct completion over all chunks
	QuerySourceError = "error" // degraded canned answer
)

type QueryResponse struct {
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	ModelUsed string `json:"model_used,omitempty"`
}
