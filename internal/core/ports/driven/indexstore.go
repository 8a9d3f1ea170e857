package driven

import "context"

// IndexRecord is a persisted chunk in the vector store.
type IndexRecord struct {
	// ChunkID is the primary key.
	ChunkID string

	// DocumentID is the owning document.
	DocumentID string

	// ContentVersion is the document version the chunk was cut from.
	ContentVersion string

	// ChunkIndex is the within-document position.
	ChunkIndex int

	// SourceText is the chunk content, stored for citation rendering.
	SourceText string

	// Embedding is the chunk vector.
	Embedding []float32
}

// ScoredRecord is a similarity search hit.
type ScoredRecord struct {
	IndexRecord

	// Score is the cosine similarity to the query vector.
	Score float64
}

// IndexStore wraps the vector database. It is the single source of truth
// for ingestion state: "already indexed" is derived by querying it, never
// from a side ledger.
type IndexStore interface {
	// EnsureCollection creates the backing collection and vector index if
	// they do not exist yet.
	EnsureCollection(ctx context.Context) error

	// GetVersion returns the content version last indexed for a document,
	// or domain.ErrNotFound when the document has never been indexed.
	GetVersion(ctx context.Context, documentID string) (string, error)

	// UpsertBatch writes records keyed by ChunkID. The call is all-or-nothing
	// and safe to retry; failures wrap domain.ErrIndexWrite.
	UpsertBatch(ctx context.Context, records []IndexRecord) error

	// DeleteVersion removes every record of a document whose content version
	// differs from keepVersion.
	DeleteVersion(ctx context.Context, documentID, keepVersion string) error

	// Search returns the topK nearest records by cosine similarity,
	// descending by score, ties broken by ChunkID ascending.
	Search(ctx context.Context, embedding []float32, topK int) ([]ScoredRecord, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}
