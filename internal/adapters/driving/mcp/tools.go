package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_pdfs tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the question or phrase to search the bills for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_pdfs tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID  string  `json:"document_id"`
	ChunkIndex  int     `json:"chunk_index"`
	Score       float64 `json:"score"`
	Text        string  `json:"text"`
	CitationTag string  `json:"citation_tag"`
}

// StatusInput is the (empty) input schema for the ingest_status tool.
type StatusInput struct{}

// StatusOutput reports the state of the ingestion pipeline.
type StatusOutput struct {
	Running   bool `json:"running"`
	Processed int  `json:"processed"`
	Skipped   int  `json:"skipped"`
	Failed    int  `json:"failed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_pdfs",
		Description: "Search the indexed utility bill PDFs by semantic similarity",
	}, s.handleSearch)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_status",
			Description: "Report the state of the bill ingestion pipeline",
		}, s.handleStatus)
	}
}

// handleSearch handles the search_pdfs tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	chunks, err := s.ports.Retriever.SearchPDFs(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(chunks)),
		Count:   len(chunks),
	}

	for i := range chunks {
		output.Results[i] = SearchResultOutput{
			DocumentID:  chunks[i].DocumentID,
			ChunkIndex:  chunks[i].ChunkIndex,
			Score:       chunks[i].Score,
			Text:        chunks[i].Text,
			CitationTag: chunks[i].CitationTag,
		}
	}

	return nil, output, nil
}

// handleStatus handles the ingest_status tool invocation.
func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	status := s.ports.Ingest.Status()
	return nil, StatusOutput{
		Running:   status.Running,
		Processed: status.Processed,
		Skipped:   status.Skipped,
		Failed:    status.Failed,
	}, nil
}
