package embedding

import "context"

// Provider generates embedding vectors for a batch of texts. Implementations
// must preserve positional correspondence: result[i] embeds texts[i].
type Provider interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
