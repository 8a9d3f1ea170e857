package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

func scoredRecord(chunkID, docID string, index int, score float64, text string) driven.ScoredRecord {
	return driven.ScoredRecord{
		IndexRecord: driven.IndexRecord{
			ChunkID:    chunkID,
			DocumentID: docID,
			ChunkIndex: index,
			SourceText: text,
		},
		Score: score,
	}
}

func TestSearchPDFs_MapsHitsToCitations(t *testing.T) {
	store := newMockStore()
	store.searchOut = []driven.ScoredRecord{
		scoredRecord("c1", "march.pdf", 2, 0.91, "total due: $80"),
		scoredRecord("c2", "april.pdf", 0, 0.72, "total due: $95"),
	}
	r := NewRetriever(&mockEmbedder{}, store, 5, 0.3)

	chunks, err := r.SearchPDFs(context.Background(), "how much in march", 0)
	if err != nil {
		t.Fatalf("SearchPDFs: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].CitationTag != "[march.pdf#2]" {
		t.Errorf("citation = %q, want [march.pdf#2]", chunks[0].CitationTag)
	}
	if chunks[0].Score < chunks[1].Score {
		t.Error("results not ranked by score")
	}
}

func TestSearchPDFs_DropsHitsBelowThreshold(t *testing.T) {
	store := newMockStore()
	store.searchOut = []driven.ScoredRecord{
		scoredRecord("c1", "march.pdf", 0, 0.9, "strong match"),
		scoredRecord("c2", "april.pdf", 0, 0.1, "noise"),
	}
	r := NewRetriever(&mockEmbedder{}, store, 5, 0.3)

	chunks, err := r.SearchPDFs(context.Background(), "march total", 0)
	if err != nil {
		t.Fatalf("SearchPDFs: %v", err)
	}
	if len(chunks) != 1 || chunks[0].DocumentID != "march.pdf" {
		t.Fatalf("chunks = %+v, want only march.pdf", chunks)
	}
}

func TestSearchPDFs_ZeroThresholdKeepsEveryHit(t *testing.T) {
	store := newMockStore()
	store.searchOut = []driven.ScoredRecord{
		scoredRecord("c1", "march.pdf", 0, 0.9, "strong match"),
		scoredRecord("c2", "april.pdf", 0, 0.05, "weak match"),
	}
	r := NewRetriever(&mockEmbedder{}, store, 5, 0)

	chunks, err := r.SearchPDFs(context.Background(), "march total", 0)
	if err != nil {
		t.Fatalf("SearchPDFs: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want both hits kept", len(chunks))
	}
}

func TestSearchPDFs_NegativeThresholdUsesDefault(t *testing.T) {
	store := newMockStore()
	store.searchOut = []driven.ScoredRecord{
		scoredRecord("c1", "march.pdf", 0, 0.9, "strong match"),
		scoredRecord("c2", "april.pdf", 0, 0.05, "weak match"),
	}
	r := NewRetriever(&mockEmbedder{}, store, 5, -1)

	chunks, err := r.SearchPDFs(context.Background(), "march total", 0)
	if err != nil {
		t.Fatalf("SearchPDFs: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want the default threshold applied", len(chunks))
	}
}

func TestSearchPDFs_EmptyResultIsNotAnError(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, newMockStore(), 5, 0.3)

	chunks, err := r.SearchPDFs(context.Background(), "unrelated question", 0)
	if err != nil {
		t.Fatalf("SearchPDFs: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("chunks = %+v, want none", chunks)
	}
}

func TestSearchPDFs_EmptyQueryRejected(t *testing.T) {
	r := NewRetriever(&mockEmbedder{}, newMockStore(), 5, 0.3)

	_, err := r.SearchPDFs(context.Background(), "", 0)
	if !errors.Is(err, domain.ErrToolArgument) {
		t.Fatalf("err = %v, want ErrToolArgument", err)
	}
}

func TestSearchPDFs_EmbedFailurePropagates(t *testing.T) {
	embedder := &mockEmbedder{err: errors.New("down")}
	r := NewRetriever(embedder, newMockStore(), 5, 0.3)

	if _, err := r.SearchPDFs(context.Background(), "march", 0); err == nil {
		t.Fatal("expected error")
	}
}
