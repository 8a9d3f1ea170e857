// Package chunker provides deterministic fixed-size text chunking.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
)

// DefaultChunkSize is the default window size in bytes of UTF-8 text.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default overlap between windows in bytes.
const DefaultChunkOverlap = 200

// chunkNamespace is the UUIDv5 namespace for chunk identifiers. Chunk IDs
// are a pure function of (document ID, content version, index), which makes
// index upserts naturally idempotent.
var chunkNamespace = uuid.MustParse("9f2c3c1e-55d4-4f7a-9a6b-6d1b6f0f4a21")

// Chunker splits document text into overlapping fixed-size windows.
// Windows are measured in bytes; window i starts at i*(size-overlap) and the
// last window is truncated to the remaining text, never padded.
type Chunker struct {
	size    int
	overlap int
}

// New creates a chunker. It wraps domain.ErrConfig when size is not positive
// or overlap is negative or not smaller than size.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap must be in [0, size), got %d for size %d",
			domain.ErrConfig, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured window size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text into ordered chunks for the given document version.
// Identical input always yields an identical chunk sequence, IDs included.
// Empty text produces no chunks.
func (c *Chunker) Chunk(documentID, contentVersion, text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	stride := c.size - c.overlap
	total := len(text)
	chunks := make([]domain.Chunk, 0, total/stride+1)

	for index, start := 0, 0; start < total; index, start = index+1, start+stride {
		end := start + c.size
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			ID:             ChunkID(documentID, contentVersion, index),
			DocumentID:     documentID,
			ContentVersion: contentVersion,
			Index:          index,
			Text:           text[start:end],
			StartOffset:    start,
			Length:         end - start,
		})
	}

	return chunks
}

// ChunkID derives the deterministic identifier of a chunk.
func ChunkID(documentID, contentVersion string, index int) string {
	name := fmt.Sprintf("%s@%s#%d", documentID, contentVersion, index)
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
