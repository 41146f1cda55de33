package embedding

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	vectors [][]float32
	err     error
}

func (p *stubProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.vectors, nil
}

func TestHashVectorDeterministic(t *testing.T) {
	a := HashVector("non-disclosure clause", 384)
	b := HashVector("non-disclosure clause", 384)

	require.Len(t, a, 384)
	assert.Equal(t, a, b)

	c := HashVector("termination clause", 384)
	assert.NotEqual(t, a, c)
}

func TestHashVectorRange(t *testing.T) {
	v := HashVector("payment terms", 384)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(-0.5))
		assert.Less(t, x, float32(0.5))
		assert.False(t, math.IsNaN(float64(x)))
	}
}

func TestHashVectorCyclicExtension(t *testing.T) {
	// sha256 hex expands to 32 base values; longer vectors repeat them.
	v := HashVector("clause", 384)
	require.Len(t, v, 384)
	assert.Equal(t, v[0], v[32])
	assert.Equal(t, v[5], v[37])
}

func TestEmbedBatchProviderDown(t *testing.T) {
	svc := NewService(&stubProvider{err: errors.New("connection refused")}, 384)

	texts := []string{"clause one", "clause two"}
	first, source := svc.EmbedBatch(context.Background(), texts)
	require.Len(t, first, 2)
	assert.Equal(t, SourceHash, source)

	// Fallback is a pure function of the text: repeat calls are identical.
	second, _ := svc.EmbedBatch(context.Background(), texts)
	assert.Equal(t, first, second)

	for _, v := range first {
		assert.Len(t, v, 384)
	}
	assert.NotEqual(t, first[0], first[1])
}

func TestEmbedBatchNoProviderConfigured(t *testing.T) {
	svc := NewService(nil, 128)

	vectors, source := svc.EmbedBatch(context.Background(), []string{"x"})
	require.Len(t, vectors, 1)
	assert.Len(t, vectors[0], 128)
	assert.Equal(t, SourceHash, source)
}

func TestEmbedBatchProviderSuccess(t *testing.T) {
	want := [][]float32{{0.1, 0.2}, {0.3, 0.4}}
	svc := NewService(&stubProvider{vectors: want}, 2)

	vectors, source := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.Equal(t, SourceProvider, source)
	assert.Equal(t, want, vectors)
}

func TestEmbedBatchCountMismatchFallsBack(t *testing.T) {
	svc := NewService(&stubProvider{vectors: [][]float32{{0.1}}}, 4)

	vectors, source := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	require.Len(t, vectors, 2)
	assert.Equal(t, SourceHash, source)
}

func TestEmbedBatchRejectsNaN(t *testing.T) {
	svc := NewService(&stubProvider{vectors: [][]float32{
		{float32(math.NaN()), 0.2},
		{0.3, 0.4},
	}}, 2)

	vectors, source := svc.EmbedBatch(context.Background(), []string{"bad", "good"})
	require.Len(t, vectors, 2)
	// Position 0 came from the hash fallback, position 1 from the provider.
	assert.Equal(t, SourceHash, source)
	assert.Equal(t, HashVector("bad", 2), vectors[0])
	assert.Equal(t, []float32{0.3, 0.4}, vectors[1])
}

func TestEmbedOne(t *testing.T) {
	svc := NewService(nil, 384)

	v, source := svc.EmbedOne(context.Background(), "what are the payment terms?")
	assert.Len(t, v, 384)
	assert.Equal(t, SourceHash, source)
	assert.Equal(t, HashVector("what are the payment terms?", 384), v)
}
