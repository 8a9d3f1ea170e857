package driving

import (
	"context"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
)

// AgentService answers natural-language questions about indexed documents
// through a tool-calling conversation with the language model.
type AgentService interface {
	// Ask runs one conversational turn: the question is sent to the model,
	// tool calls are executed as requested, and the final answer is returned
	// with its citation provenance. A cancelled turn leaves the conversation
	// history untouched.
	Ask(ctx context.Context, question string) (*domain.Answer, error)

	// Reset clears the conversation history.
	Reset()
}

// RetrievalTool is the search capability exposed to the model.
type RetrievalTool interface {
	// SearchPDFs embeds the query and returns similarity-ranked, citable
	// hits. An empty result means no chunk cleared the score threshold;
	// it is a valid answer, not an error.
	SearchPDFs(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error)
}
