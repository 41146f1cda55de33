package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Inputs, 2)

		json.NewEncoder(w).Encode([][]float32{{0.1, 0.2}, {0.3, 0.4}})
	}))
	defer srv.Close()

	p := NewHuggingFaceProviderWithBaseURL("test-key", "test-model", srv.URL)
	vectors, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, vectors)
}

func TestEmbedBatchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHuggingFaceProviderWithBaseURL("", "test-model", srv.URL)
	_, err := p.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestEmbedBatchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "not a list"}`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProviderWithBaseURL("", "test-model", srv.URL)
	_, err := p.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestEmbedBatchEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewHuggingFaceProviderWithBaseURL("", "test-model", srv.URL)
	_, err := p.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([][]float32{{0.1}})
	}))
	defer srv.Close()

	p := NewHuggingFaceProviderWithBaseURL("", "test-model", srv.URL)
	_, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}
