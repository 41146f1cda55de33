package embedding

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashVector derives a deterministic embedding from the text content alone.
// It is the degraded-mode stand-in when the provider is unreachable: the
// sha256 hex digest is expanded pairwise into values in [-0.5, 0.5) and
// cyclically repeated until the vector reaches dim entries. The same text
// always yields the same vector, across processes and restarts.
func HashVector(text string, dim int) []float32 {
	if dim <= 0 {
		return nil
	}

	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])

	base := make([]float32, 0, len(digest)/2)
	for i := 0; i+2 <= len(digest); i += 2 {
		// Two hex digits give 0..255; normalize to [-0.5, 0.5).
		b := hexByte(digest[i], digest[i+1])
		base = append(base, float32(b)/256.0-0.5)
	}

	vector := make([]float32, dim)
	for i := range vector {
		vector[i] = base[i%len(base)]
	}
	return vector
}

func hexByte(hi, lo byte) int {
	return hexDigit(hi)<<4 | hexDigit(lo)
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
