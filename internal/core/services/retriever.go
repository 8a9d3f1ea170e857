package services

import (
	"context"
	"fmt"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalTool = (*Retriever)(nil)

// Default retrieval parameters.
const (
	DefaultTopK     = 5
	DefaultMinScore = 0.3
)

// Retriever answers similarity queries against the index. Hits below the
// minimum score are dropped rather than surfaced as weak evidence.
type Retriever struct {
	embedder driven.EmbeddingService
	store    driven.IndexStore
	topK     int
	minScore float64
}

// NewRetriever creates a retrieval tool. topK falls back to the default when
// not positive; minScore falls back only when negative, so zero remains a
// valid threshold meaning "keep every hit".
func NewRetriever(embedder driven.EmbeddingService, store driven.IndexStore, topK int, minScore float64) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if minScore < 0 {
		minScore = DefaultMinScore
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		topK:     topK,
		minScore: minScore,
	}
}

// SearchPDFs embeds the query and returns the ranked hits that clear the
// score threshold. An empty result is a valid answer, not an error.
func (r *Retriever) SearchPDFs(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrToolArgument)
	}
	if topK <= 0 {
		topK = r.topK
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{query}, driven.ModeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	records, err := r.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	chunks := make([]domain.RetrievedChunk, 0, len(records))
	for _, rec := range records {
		if rec.Score < r.minScore {
			continue
		}
		chunks = append(chunks, domain.RetrievedChunk{
			ChunkID:     rec.ChunkID,
			DocumentID:  rec.DocumentID,
			ChunkIndex:  rec.ChunkIndex,
			Score:       rec.Score,
			Text:        rec.SourceText,
			CitationTag: domain.Citation(rec.DocumentID, rec.ChunkIndex),
		})
	}

	logger.Debug("Query returned %d hits, %d above threshold", len(records), len(chunks))
	return chunks, nil
}
