package driven

import (
	"context"
	"encoding/json"
)

// LLMService provides chat completion with tool calling.
//
// Implementations may include:
//   - Ollama (local models with tool support)
//   - OpenAI-compatible endpoints
type LLMService interface {
	// ChatWithTools sends the conversation and the available tool schemas
	// to the model. The model replies with either final text or one or more
	// structured tool-call requests.
	ChatWithTools(ctx context.Context, messages []ChatMessage, tools []Tool, opts ChatOptions) (*ChatResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", "assistant", or "tool".
	Role string

	// Content is the message text. For tool messages it is the serialised
	// tool result.
	Content string

	// ToolCalls carries the tool requests an assistant message made, so the
	// exchange can be replayed to the model on the next round.
	ToolCalls []ToolCall
}

// Tool describes a callable function exposed to the model.
type Tool struct {
	// Name is the tool identifier the model uses to call it.
	Name string

	// Description tells the model what the tool does.
	Description string

	// Parameters is the JSON schema of the tool arguments.
	Parameters json.RawMessage
}

// ToolCall is a structured tool invocation requested by the model.
type ToolCall struct {
	// Name is the requested tool.
	Name string

	// Arguments are the model-supplied arguments, decoded from JSON.
	Arguments map[string]any
}

// ChatResult is the model's reply: final text, or tool calls to execute.
type ChatResult struct {
	// Content is the assistant text. Empty when the model requested tools.
	Content string

	// ToolCalls are the requested tool invocations, empty for a final answer.
	ToolCalls []ToolCall
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
