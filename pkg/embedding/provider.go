package embedding

import (
	"context"
)

// Result carries the embedding vector plus what the provider billed for it
type Result struct {
	Vector      []float32
	Model       string
	InputTokens int
}

// EmbeddingProvider defines the contract for generating vector embeddings
type EmbeddingProvider interface {
	// Generate creates a vector embedding for the given text
	Generate(ctx context.Context, text string) (*Result, error)

	// Dimensions returns the size of vectors produced by this provider
	Dimensions() int
}
