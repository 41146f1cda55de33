package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HuggingFaceProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type embeddingRequest struct {
	Inputs []string `json:"inputs"`
}

func NewHuggingFaceProvider(apiKey, model string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		apiKey:  apiKey,
		baseURL: "https://api-inference.huggingface.co/models",
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewHuggingFaceProviderWithBaseURL exists for tests targeting a local server.
func NewHuggingFaceProviderWithBaseURL(apiKey, model, baseURL string) *HuggingFaceProvider {
	p := NewHuggingFaceProvider(apiKey, model)
	p.baseURL = baseURL
	return p
}

func (p *HuggingFaceProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	reqBody := embeddingRequest{Inputs: texts}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// The feature-extraction endpoint returns a bare JSON list of vectors.
	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embeddings from huggingface api")
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d inputs", len(vectors), len(texts))
	}

	return vectors, nil
}
