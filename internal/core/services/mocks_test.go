package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

// mockSource serves documents from an in-memory map.
type mockSource struct {
	refs    []domain.DocumentRef
	content map[string][]byte
	listErr error
}

func (m *mockSource) List(context.Context) ([]domain.DocumentRef, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.refs, nil
}

func (m *mockSource) Get(_ context.Context, documentID string) ([]byte, error) {
	data, ok := m.content[documentID]
	if !ok {
		return nil, fmt.Errorf("no such document %s", documentID)
	}
	return data, nil
}

// mockExtractor returns the document bytes as text, or a canned error for
// documents listed in failFor.
type mockExtractor struct {
	failFor map[string]bool
}

func (m *mockExtractor) Extract(_ context.Context, data []byte, _ string) (string, error) {
	text := string(data)
	if m.failFor[text] {
		return "", fmt.Errorf("%w: no text layer", domain.ErrExtraction)
	}
	return text, nil
}

// mockEmbedder returns fixed-width vectors, one per text.
type mockEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string, _ driven.EmbedMode) ([][]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(len(texts[i])), 0, 0}
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int            { return 3 }
func (m *mockEmbedder) ModelName() string          { return "mock-embed" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

// mockStore is an in-memory index store tracking writes and deletes.
type mockStore struct {
	mu             sync.Mutex
	records        map[string]driven.IndexRecord // keyed by ChunkID
	upserts        int
	deletes        []string // "documentID!=keepVersion" per DeleteVersion call
	deleteFailures int      // DeleteVersion fails this many times before working
	searchOut      []driven.ScoredRecord
	searchErr      error
	upsertErr      error
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]driven.IndexRecord)}
}

func (m *mockStore) EnsureCollection(context.Context) error { return nil }

// GetVersion returns the highest version present for the document. When
// stale rows coexist with current ones this deliberately answers with the
// current version, the worst case for skip decisions.
func (m *mockStore) GetVersion(_ context.Context, documentID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var version string
	for _, rec := range m.records {
		if rec.DocumentID == documentID && rec.ContentVersion > version {
			version = rec.ContentVersion
		}
	}
	if version == "" {
		return "", domain.ErrNotFound
	}
	return version, nil
}

func (m *mockStore) UpsertBatch(_ context.Context, records []driven.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	for _, rec := range records {
		m.records[rec.ChunkID] = rec
	}
	return nil
}

func (m *mockStore) DeleteVersion(_ context.Context, documentID, keepVersion string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteFailures > 0 {
		m.deleteFailures--
		return fmt.Errorf("%w: compaction in progress", domain.ErrIndexWrite)
	}
	m.deletes = append(m.deletes, documentID+"!="+keepVersion)
	for id, rec := range m.records {
		if rec.DocumentID == documentID && rec.ContentVersion != keepVersion {
			delete(m.records, id)
		}
	}
	return nil
}

func (m *mockStore) Search(context.Context, []float32, int) ([]driven.ScoredRecord, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchOut, nil
}

func (m *mockStore) Close(context.Context) error { return nil }

// scriptedLLM replays a fixed sequence of chat results and records what it
// was sent.
type scriptedLLM struct {
	mu       sync.Mutex
	script   []*driven.ChatResult
	received [][]driven.ChatMessage
	err      error
}

func (m *scriptedLLM) ChatWithTools(
	_ context.Context,
	messages []driven.ChatMessage,
	_ []driven.Tool,
	_ driven.ChatOptions,
) (*driven.ChatResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	copied := make([]driven.ChatMessage, len(messages))
	copy(copied, messages)
	m.received = append(m.received, copied)
	if len(m.script) == 0 {
		return &driven.ChatResult{Content: "out of script"}, nil
	}
	next := m.script[0]
	m.script = m.script[1:]
	return next, nil
}

func (m *scriptedLLM) ModelName() string          { return "mock-llm" }
func (m *scriptedLLM) Ping(context.Context) error { return nil }
func (m *scriptedLLM) Close() error               { return nil }

// mockRetriever returns a canned result set.
type mockRetriever struct {
	mu      sync.Mutex
	queries []string
	out     []domain.RetrievedChunk
	err     error
}

func (m *mockRetriever) SearchPDFs(_ context.Context, query string, _ int) ([]domain.RetrievedChunk, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}
