package embedding

import (
	"context"
	"log"
	"math"
)

// Vector generation source, recorded per chunk so degraded retrieval quality
// can be traced back to hash-based vectors.
const (
	SourceProvider = "provider"
	SourceHash     = "hash"
)

// Service wraps a Provider with the deterministic hash fallback. It never
// fails for provider unavailability: a usable vector always comes back.
type Service struct {
	provider Provider // nil when no API key is configured
	dim      int
}

func NewService(provider Provider, dim int) *Service {
	return &Service{
		provider: provider,
		dim:      dim,
	}
}

// Dim returns the configured vector dimension.
func (s *Service) Dim() int {
	return s.dim
}

// EmbedBatch embeds texts preserving positional correspondence. The returned
// source is SourceProvider when the upstream call produced every vector, and
// SourceHash when the hash fallback supplied any of them.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, string) {
	if len(texts) == 0 {
		return nil, SourceProvider
	}

	if s.provider == nil {
		log.Printf("[WARN] Embedding provider not configured, using hash vectors for %d texts", len(texts))
		return s.hashAll(texts), SourceHash
	}

	vectors, err := s.provider.EmbedBatch(ctx, texts)
	if err != nil {
		log.Printf("[WARN] Embedding provider failed: %v, using hash vectors", err)
		return s.hashAll(texts), SourceHash
	}
	if len(vectors) != len(texts) {
		log.Printf("[WARN] Embedding provider returned %d vectors for %d texts, using hash vectors", len(vectors), len(texts))
		return s.hashAll(texts), SourceHash
	}

	source := SourceProvider
	out := make([][]float32, len(texts))
	for i, v := range vectors {
		fitted, ok := s.fit(v)
		if !ok {
			// Unusable vector for this position only; correspondence holds.
			fitted = HashVector(texts[i], s.dim)
			source = SourceHash
		}
		out[i] = fitted
	}
	return out, source
}

// EmbedOne embeds a single text, typically a retrieval query.
func (s *Service) EmbedOne(ctx context.Context, text string) ([]float32, string) {
	vectors, source := s.EmbedBatch(ctx, []string{text})
	return vectors[0], source
}

func (s *Service) hashAll(texts []string) [][]float32 {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = HashVector(t, s.dim)
	}
	return out
}

// fit validates a provider vector and pads or truncates it to the configured
// dimension. Vectors carrying NaN/Inf are rejected.
func (s *Service) fit(v []float32) ([]float32, bool) {
	if len(v) == 0 {
		return nil, false
	}
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
	}
	if len(v) == s.dim {
		return v, true
	}
	fitted := make([]float32, s.dim)
	for i := range fitted {
		fitted[i] = v[i%len(v)]
	}
	return fitted, true
}
