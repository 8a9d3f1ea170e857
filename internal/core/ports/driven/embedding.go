package driven

import "context"

// EmbedMode selects the input prefix convention for the embedding model.
// Document and query texts must be prefixed differently (nomic convention)
// or retrieval quality degrades.
type EmbedMode int

const (
	// ModeDocument embeds text that will be stored in the index.
	ModeDocument EmbedMode = iota

	// ModeQuery embeds a search query.
	ModeQuery
)

// Prefix returns the string prepended to the text before embedding.
func (m EmbedMode) Prefix() string {
	if m == ModeQuery {
		return "search_query: "
	}
	return "search_document: "
}

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - Ollama (nomic-embed-text)
//   - Local models via inference servers
type EmbeddingService interface {
	// EmbedBatch generates one fixed-dimension vector per input text,
	// order preserving. The call fails atomically: on an empty input list
	// or any underlying model failure it returns an error wrapping
	// domain.ErrEmbedding and no partial result.
	EmbedBatch(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error)

	// Dimensions returns the embedding vector size (768 for nomic-embed-text).
	// This must match the index store collection configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
