package llm

import "context"

// Embedder turns text into vectors for similarity ranking.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, inputs []string) ([][]float32, error)
}
