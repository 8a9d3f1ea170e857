package domain

// DocumentRef identifies a document in the content source together with its
// current content version.
type DocumentRef struct {
	// ID is the stable document identifier (object key or relative path).
	ID string

	// ContentVersion is an opaque content-addressed token (ETag, hash).
	// It changes if and only if the document bytes change.
	ContentVersion string
}

// Chunk is a contiguous slice of a document's extracted text.
// Chunk boundaries are fully determined by the chunker parameters and the
// text, so re-chunking identical input yields identical chunks.
type Chunk struct {
	// ID is the deterministic chunk identifier, derived from
	// (DocumentID, ContentVersion, Index).
	ID string

	// DocumentID links to the source document.
	DocumentID string

	// ContentVersion is the document version this chunk was cut from.
	// A chunk never outlives the version that produced it.
	ContentVersion string

	// Index is the ordinal position within the document.
	Index int

	// Text is the chunk content.
	Text string

	// StartOffset is the byte offset of the chunk within the document text.
	StartOffset int

	// Length is the chunk length in bytes.
	Length int

	// Embedding is the vector representation, populated by the embedder.
	Embedding []float32
}
