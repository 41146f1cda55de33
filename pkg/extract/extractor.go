package extract

import "context"

// Extractor turns uploaded file bytes into plain text.
type Extractor interface {
	// Extract returns the text content of the file. fileType is the
	// dotted extension (".pdf", ".docx", ".txt").
	Extract(ctx context.Context, content []byte, fileType string) (string, error)
}
