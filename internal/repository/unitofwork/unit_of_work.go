package unitofwork

import (
	"context"

	"contract-iq-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	DocumentSummaryRepository() contract.DocumentSummaryRepository
	DocumentRiskAnalysisRepository() contract.DocumentRiskAnalysisRepository
}
