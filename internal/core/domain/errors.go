package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// The index store returns it when a document has never been indexed.
	ErrNotFound = errors.New("not found")

	// ErrConfig indicates invalid configuration, such as a chunk overlap
	// that is not smaller than the chunk size. Fatal at startup.
	ErrConfig = errors.New("invalid configuration")

	// ErrExtraction indicates a document could not be turned into text
	// (corrupt or empty PDF). The document is skipped; the run continues.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmbedding indicates the embedding model call failed. The whole
	// batch fails atomically so the caller can retry without partial writes.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndexWrite indicates a vector store write failed. Upserts are keyed
	// by chunk ID, so retrying the batch is safe.
	ErrIndexWrite = errors.New("index write failed")

	// ErrToolArgument indicates the model issued a malformed tool call.
	// It is surfaced back to the model as a tool result, not to the user.
	ErrToolArgument = errors.New("invalid tool arguments")

	// ErrServiceUnavailable indicates a backing service (storage, vector
	// store, model endpoint) stayed unreachable after retries.
	ErrServiceUnavailable = errors.New("service unavailable")
)
