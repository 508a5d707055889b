package search

import "context"

// Embedder converts text into embedding vectors, one fixed-length
// vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
