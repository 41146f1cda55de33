package retrieval

import (
	"context"
	"log"

	"contract-iq-be/internal/entity"
	"contract-iq-be/internal/repository/contract"
	"contract-iq-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Retriever finds the chunks of a document most similar to a query
// vector. Similarity search is best effort: when the store errors or
// nothing clears the threshold, the full document (in chunk order) is
// returned instead so the caller always has context to work with.
type Retriever struct {
	chunks contract.DocumentChunkRepository
}

func NewRetriever(chunks contract.DocumentChunkRepository) *Retriever {
	return &Retriever{chunks: chunks}
}

// Search returns up to limit chunks above the similarity threshold,
// ordered by descending similarity (ascending chunk index on ties).
// The returned bool reports whether similarity matching was used; false
// means the all-chunks fallback.
func (r *Retriever) Search(ctx context.Context, queryVec []float32, documentId uuid.UUID, limit int, threshold float64) ([]*entity.DocumentChunk, bool, error) {
	scored, err := r.chunks.SearchSimilarWithScore(ctx, queryVec, documentId, limit, threshold)
	if err != nil {
		log.Printf("[Retrieval] Similarity search failed for document %s: %v, falling back to all chunks", documentId, err)
		chunks, fbErr := r.AllChunks(ctx, documentId)
		return chunks, false, fbErr
	}

	if len(scored) == 0 {
		chunks, fbErr := r.AllChunks(ctx, documentId)
		return chunks, false, fbErr
	}

	chunks := make([]*entity.DocumentChunk, len(scored))
	for i, s := range scored {
		chunks[i] = s.Chunk
	}
	return chunks, true, nil
}

// AllChunks returns every chunk of the document ordered by chunk index.
func (r *Retriever) AllChunks(ctx context.Context, documentId uuid.UUID) ([]*entity.DocumentChunk, error) {
	return r.chunks.FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderByChunkIndex{},
	)
}
