package cli

import (
	"context"
	"testing"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/config"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
)

// withServices installs mock services for a command test and restores the
// previous wiring afterwards. bootstrap is a no-op while cfg is non-nil.
func withServices(t *testing.T, ingest driving.IngestOrchestrator, agent driving.AgentService) {
	t.Helper()
	prevCfg, prevStore, prevLLM := cfg, indexStore, llmService
	prevIngest, prevAgent := ingestService, agentService
	cfg = &config.Config{}
	indexStore = &noopStore{}
	llmService = &mockLLM{}
	ingestService = ingest
	agentService = agent
	t.Cleanup(func() {
		cfg, indexStore, llmService = prevCfg, prevStore, prevLLM
		ingestService, agentService = prevIngest, prevAgent
	})
}

// mockLLM satisfies the LLM port for command tests; only Ping matters here.
type mockLLM struct {
	pingErr error
}

func (m *mockLLM) ChatWithTools(
	context.Context,
	[]driven.ChatMessage,
	[]driven.Tool,
	driven.ChatOptions,
) (*driven.ChatResult, error) {
	return &driven.ChatResult{}, nil
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return m.pingErr }
func (m *mockLLM) Close() error               { return nil }

// noopStore satisfies the index store port for command tests.
type noopStore struct{}

func (*noopStore) EnsureCollection(context.Context) error { return nil }

func (*noopStore) GetVersion(context.Context, string) (string, error) {
	return "", domain.ErrNotFound
}

func (*noopStore) UpsertBatch(context.Context, []driven.IndexRecord) error { return nil }

func (*noopStore) DeleteVersion(context.Context, string, string) error { return nil }
func (*noopStore) Search(context.Context, []float32, int) ([]driven.ScoredRecord, error) {
	return nil, nil
}
func (*noopStore) Close(context.Context) error { return nil }

// mockIngest returns a canned summary.
type mockIngest struct {
	summary *driving.IngestSummary
	err     error
}

func (m *mockIngest) Run(context.Context) (*driving.IngestSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockIngest) Status() driving.IngestStatus { return driving.IngestStatus{} }

// mockAgent replays canned answers.
type mockAgent struct {
	answers []*domain.Answer
	resets  int
}

func (m *mockAgent) Ask(context.Context, string) (*domain.Answer, error) {
	if len(m.answers) == 0 {
		return &domain.Answer{Text: "out of script", Grounded: true}, nil
	}
	next := m.answers[0]
	m.answers = m.answers[1:]
	return next, nil
}

func (m *mockAgent) Reset() { m.resets++ }
