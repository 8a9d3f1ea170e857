package mcp

import (
	"context"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
)

// mockRetriever returns canned search results.
type mockRetriever struct {
	chunks []domain.RetrievedChunk
	err    error
}

func (m *mockRetriever) SearchPDFs(context.Context, string, int) ([]domain.RetrievedChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

// mockIngest reports a fixed status.
type mockIngest struct {
	status driving.IngestStatus
}

func (m *mockIngest) Run(context.Context) (*driving.IngestSummary, error) {
	return &driving.IngestSummary{}, nil
}

func (m *mockIngest) Status() driving.IngestStatus {
	return m.status
}
