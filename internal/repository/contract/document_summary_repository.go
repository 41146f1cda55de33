package contract

import (
	"context"

	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentSummaryRepository interface {
	Create(ctx context.Context, summary *entity.DocumentSummary) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentSummary, error)
}

type DocumentRiskAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.DocumentRiskAnalysis) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentRiskAnalysis, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentRiskAnalysis, error)
}
