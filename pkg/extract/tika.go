package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// TikaExtractor extracts text from binary documents through an Apache
// Tika server (PUT /tika with Accept: text/plain). Plain .txt files are
// decoded locally without a round trip.
type TikaExtractor struct {
	baseURL string
	client  *http.Client
}

func NewTikaExtractor(baseURL string) *TikaExtractor {
	return &TikaExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *TikaExtractor) Extract(ctx context.Context, content []byte, fileType string) (string, error) {
	mime, ok := mimeByExtension[fileType]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}

	if fileType == ".txt" {
		return sanitizeText(content), nil
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", e.baseURL+"/tika", bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mime)
	req.Header.Set("Accept", "text/plain")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction server returned status %d", resp.StatusCode)
	}

	return sanitizeText(body), nil
}

// sanitizeText drops invalid UTF-8 sequences so downstream chunking and
// JSON encoding never trip over decode errors.
func sanitizeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), "")
}
