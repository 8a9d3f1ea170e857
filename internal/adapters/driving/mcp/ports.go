package mcp

import (
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever provides similarity search over the indexed bills.
	Retriever driving.RetrievalTool

	// Ingest optionally exposes ingestion status.
	Ingest driving.IngestOrchestrator
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	// Ingest is optional; without it the status tool is not registered.
	return nil
}
