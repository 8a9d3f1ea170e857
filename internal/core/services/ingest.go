// Package services contains the core business logic, wired to the outside
// world only through ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/chunker"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driving"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestOrchestrator = (*IngestService)(nil)

// DefaultIngestConcurrency bounds how many documents are processed at once.
const DefaultIngestConcurrency = 4

// defaultRetryLimit bounds retries of transient embedding and index failures.
const defaultRetryLimit = 3

// IngestService walks the content source and brings the vector index up to
// date with it. A document is re-indexed only when its content version
// differs from what the index already holds; the old version is deleted only
// after the new one is fully written, so a crash mid-run never loses data.
type IngestService struct {
	source      driven.ContentSource
	extractor   driven.TextExtractor
	embedder    driven.EmbeddingService
	store       driven.IndexStore
	chunker     *chunker.Chunker
	concurrency int

	mu      sync.Mutex
	status  driving.IngestStatus
	summary driving.IngestSummary
}

// NewIngestService creates an ingest orchestrator.
func NewIngestService(
	source driven.ContentSource,
	extractor driven.TextExtractor,
	embedder driven.EmbeddingService,
	store driven.IndexStore,
	ch *chunker.Chunker,
	concurrency int,
) *IngestService {
	if concurrency <= 0 {
		concurrency = DefaultIngestConcurrency
	}
	return &IngestService{
		source:      source,
		extractor:   extractor,
		embedder:    embedder,
		store:       store,
		chunker:     ch,
		concurrency: concurrency,
	}
}

// Run processes every document in the source. Per-document failures are
// recorded and do not stop the other documents; only a failed source listing
// or collection setup aborts the run.
func (s *IngestService) Run(ctx context.Context) (*driving.IngestSummary, error) {
	s.mu.Lock()
	if s.status.Running {
		s.mu.Unlock()
		return nil, fmt.Errorf("ingestion already running")
	}
	s.status = driving.IngestStatus{Running: true}
	s.summary = driving.IngestSummary{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.status.Running = false
		s.mu.Unlock()
	}()

	if err := s.store.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	logger.Section("Ingestion")

	refs, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source: %w", err)
	}
	logger.Info("Found %d documents in source", len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, ref := range refs {
		g.Go(func() error {
			if err := s.processDocument(gctx, ref); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn("Document %s failed: %v", ref.ID, err)
				s.recordFailure(ref.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	summary := s.summary
	return &summary, nil
}

// Status returns a snapshot of the run in progress.
func (s *IngestService) Status() driving.IngestStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// processDocument indexes one document, skipping it when the indexed version
// already matches the source version.
func (s *IngestService) processDocument(ctx context.Context, ref domain.DocumentRef) error {
	indexed, err := s.store.GetVersion(ctx, ref.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get indexed version: %w", err)
	}
	if err == nil && indexed == ref.ContentVersion {
		logger.Debug("Skipping %s: version %s already indexed", ref.ID, ref.ContentVersion)
		// A crash or delete failure on an earlier run can leave stale
		// versions behind the current one. The delete is idempotent, so
		// issue it on every skip and reruns converge on a clean index.
		if err := s.retry(ctx, func() error {
			return s.store.DeleteVersion(ctx, ref.ID, ref.ContentVersion)
		}); err != nil {
			return fmt.Errorf("delete stale version: %w", err)
		}
		s.recordSkipped()
		return nil
	}

	data, err := s.source.Get(ctx, ref.ID)
	if err != nil {
		return fmt.Errorf("fetch document: %w", err)
	}

	text, err := s.extractor.Extract(ctx, data, "application/pdf")
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	chunks := s.chunker.Chunk(ref.ID, ref.ContentVersion, text)
	if len(chunks) == 0 {
		return fmt.Errorf("%w: document produced no chunks", domain.ErrExtraction)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err = s.retry(ctx, func() error {
		var embedErr error
		vectors, embedErr = s.embedder.EmbedBatch(ctx, texts, driven.ModeDocument)
		return embedErr
	})
	if err != nil {
		return fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}

	records := make([]driven.IndexRecord, len(chunks))
	for i, c := range chunks {
		records[i] = driven.IndexRecord{
			ChunkID:        c.ID,
			DocumentID:     c.DocumentID,
			ContentVersion: c.ContentVersion,
			ChunkIndex:     c.Index,
			SourceText:     c.Text,
			Embedding:      vectors[i],
		}
	}

	err = s.retry(ctx, func() error {
		return s.store.UpsertBatch(ctx, records)
	})
	if err != nil {
		return fmt.Errorf("upsert %d records: %w", len(records), err)
	}

	// The new version is fully written; now drop any stale one.
	err = s.retry(ctx, func() error {
		return s.store.DeleteVersion(ctx, ref.ID, ref.ContentVersion)
	})
	if err != nil {
		return fmt.Errorf("delete stale version: %w", err)
	}

	logger.Info("Indexed %s (%d chunks, version %s)", ref.ID, len(chunks), ref.ContentVersion)
	s.recordProcessed()
	return nil
}

// retry runs op with exponential backoff for transient failures.
func (s *IngestService) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(200*time.Millisecond),
		), defaultRetryLimit),
		ctx,
	)
	return backoff.Retry(op, policy)
}

func (s *IngestService) recordProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Processed++
	s.summary.Processed++
}

func (s *IngestService) recordSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Skipped++
	s.summary.Skipped++
}

func (s *IngestService) recordFailure(documentID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Failed++
	s.summary.Failures = append(s.summary.Failures, driving.IngestFailure{
		DocumentID: documentID,
		Reason:     err.Error(),
	})
}
