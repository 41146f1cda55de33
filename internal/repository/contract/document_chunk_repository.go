package contract

import (
	"context"

	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk wraps DocumentChunk with its similarity score
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Update(ctx context.Context, chunk *entity.DocumentChunk) error
	// UpdateEmbedding sets the vector and its source on a single chunk.
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32, source string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embedded chunks of one document with
	// their cosine similarity, filtered by threshold. Chunks without a
	// vector never match.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, documentId uuid.UUID, limit int, threshold float64) ([]*ScoredDocumentChunk, error)
}
