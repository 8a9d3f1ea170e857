package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/logger"
)

// Ensure Agent implements the interface.
var _ driving.AgentService = (*Agent)(nil)

// DefaultMaxToolRounds bounds how many tool-call rounds one question may use.
const DefaultMaxToolRounds = 3

// searchToolName is the tool exposed to the model.
const searchToolName = "search_pdfs"

// exhaustedAnswer is returned when the round bound is reached without a
// final text answer from the model.
const exhaustedAnswer = "I was unable to find an answer in the indexed documents within the allowed number of searches."

const systemPrompt = `You are an assistant that answers questions about a user's utility bills.
You can search the indexed bill PDFs with the search_pdfs tool. Each search
result carries a citation_tag like [bill-march.pdf#2].

Rules:
- Base answers only on retrieved content. If nothing relevant is found, say so.
- Cite every fact with the citation_tag of the chunk it came from, verbatim.
- Do not invent citation tags or bill values.`

// searchToolSchema is the JSON Schema for the search tool's arguments.
var searchToolSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"query": {
			"type": "string",
			"description": "Natural-language search over the bill contents"
		},
		"top_k": {
			"type": "integer",
			"description": "Maximum number of results to return"
		}
	},
	"required": ["query"]
}`)

// Agent runs the tool-calling conversation loop. Each Ask is one turn: the
// model may call the search tool up to maxRounds times before it must
// answer. History is committed only when the turn completes, so a cancelled
// or failed turn leaves the conversation exactly as it was.
type Agent struct {
	llm       driven.LLMService
	retriever driving.RetrievalTool
	maxRounds int

	mu      sync.Mutex
	history []driven.ChatMessage
}

// NewAgent creates an agent. maxRounds falls back to the default when zero.
func NewAgent(llm driven.LLMService, retriever driving.RetrievalTool, maxRounds int) *Agent {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxToolRounds
	}
	return &Agent{
		llm:       llm,
		retriever: retriever,
		maxRounds: maxRounds,
	}
}

// Ask runs one conversational turn and returns the model's answer with its
// citation provenance.
func (a *Agent) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	// The system message heads every request; history holds only user and
	// assistant turns, so the citation rules survive multi-turn sessions.
	a.mu.Lock()
	turn := make([]driven.ChatMessage, 0, len(a.history)+2)
	turn = append(turn, driven.ChatMessage{Role: "system", Content: systemPrompt})
	turn = append(turn, a.history...)
	a.mu.Unlock()

	turn = append(turn, driven.ChatMessage{Role: "user", Content: question})

	tools := []driven.Tool{{
		Name:        searchToolName,
		Description: "Search the indexed utility bill PDFs by semantic similarity",
		Parameters:  searchToolSchema,
	}}

	// Tags of every chunk surfaced to the model this turn.
	retrieved := make(map[string]struct{})
	var retrievedOrder []string

	var final string
	for round := 0; ; round++ {
		result, err := a.llm.ChatWithTools(ctx, turn, tools, driven.ChatOptions{})
		if err != nil {
			return nil, fmt.Errorf("chat: %w", err)
		}

		if len(result.ToolCalls) == 0 {
			final = result.Content
			break
		}

		if round >= a.maxRounds {
			logger.Warn("Tool round limit (%d) reached without a final answer", a.maxRounds)
			final = exhaustedAnswer
			break
		}

		turn = append(turn, driven.ChatMessage{
			Role:      "assistant",
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})

		for _, call := range result.ToolCalls {
			content := a.executeTool(ctx, call, retrieved, &retrievedOrder)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			turn = append(turn, driven.ChatMessage{Role: "tool", Content: content})
		}
	}

	answer := &domain.Answer{
		Text:      final,
		Citations: retrievedOrder,
		Grounded:  grounded(final, retrieved),
	}

	a.mu.Lock()
	a.history = append(a.history,
		driven.ChatMessage{Role: "user", Content: question},
		driven.ChatMessage{Role: "assistant", Content: final},
	)
	a.mu.Unlock()

	return answer, nil
}

// Reset clears the conversation history.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

// executeTool runs one tool call and renders its result (or its error) as
// the tool message content. Argument errors are fed back to the model so it
// can correct itself on the next round.
func (a *Agent) executeTool(ctx context.Context, call driven.ToolCall, retrieved map[string]struct{}, order *[]string) string {
	if call.Name != searchToolName {
		return toolError(fmt.Sprintf("unknown tool %q", call.Name))
	}

	query, topK, err := parseSearchArgs(call.Arguments)
	if err != nil {
		logger.Debug("Rejected tool arguments: %v", err)
		return toolError(err.Error())
	}

	chunks, err := a.retriever.SearchPDFs(ctx, query, topK)
	if err != nil {
		return toolError(fmt.Sprintf("search failed: %v", err))
	}

	for _, c := range chunks {
		if _, ok := retrieved[c.CitationTag]; !ok {
			retrieved[c.CitationTag] = struct{}{}
			*order = append(*order, c.CitationTag)
		}
	}

	if len(chunks) == 0 {
		return `{"results":[],"note":"no chunk matched the query above the score threshold"}`
	}

	payload, err := json.Marshal(map[string]any{"results": chunks})
	if err != nil {
		return toolError(fmt.Sprintf("encode results: %v", err))
	}
	return string(payload)
}

// parseSearchArgs validates the model-supplied arguments for the search tool.
func parseSearchArgs(args map[string]any) (query string, topK int, err error) {
	raw, ok := args["query"]
	if !ok {
		return "", 0, fmt.Errorf("%w: missing required argument \"query\"", domain.ErrToolArgument)
	}
	query, ok = raw.(string)
	if !ok || query == "" {
		return "", 0, fmt.Errorf("%w: \"query\" must be a non-empty string", domain.ErrToolArgument)
	}

	if raw, ok := args["top_k"]; ok {
		// JSON numbers decode as float64.
		f, ok := raw.(float64)
		if !ok || f != float64(int(f)) || int(f) <= 0 {
			return "", 0, fmt.Errorf("%w: \"top_k\" must be a positive integer", domain.ErrToolArgument)
		}
		topK = int(f)
	}

	return query, topK, nil
}

// toolError renders an error as a tool message the model can react to.
func toolError(msg string) string {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	return string(payload)
}

// grounded reports whether every citation tag appearing in text was among
// the tags actually retrieved this turn.
func grounded(text string, retrieved map[string]struct{}) bool {
	for _, tag := range domain.ExtractCitations(text) {
		if _, ok := retrieved[tag]; !ok {
			return false
		}
	}
	return true
}
