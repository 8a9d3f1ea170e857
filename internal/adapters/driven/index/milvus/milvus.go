// Package milvus provides an index store adapter backed by Milvus.
package milvus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultAddress    = "localhost:19530"
	DefaultCollection = "utility_bills"
	DefaultDimension  = 768
	DefaultTimeout    = 30 * time.Second
)

// Field names in the collection schema.
const (
	fieldChunkID        = "chunk_id"
	fieldEmbedding      = "embedding"
	fieldDocumentID     = "document_id"
	fieldContentVersion = "content_version"
	fieldChunkIndex     = "chunk_index"
	fieldSourceText     = "source_text"
)

// Config holds configuration for the Milvus index store.
type Config struct {
	// Address is the Milvus server address (default: localhost:19530).
	Address string

	// Username and Password authenticate against the server. Both may be
	// empty for an unauthenticated deployment.
	Username string
	Password string

	// Database is the Milvus database name. Empty uses the default.
	Database string

	// Collection is the collection holding chunk records (default: utility_bills).
	Collection string

	// Dimension is the embedding vector width (default: 768).
	Dimension int

	// Timeout bounds the initial connection attempt (default: 30s).
	Timeout time.Duration
}

// Store persists chunk records and serves similarity search over them.
// Chunk IDs are deterministic, so a re-run of ingestion upserts the same
// rows instead of accumulating duplicates.
type Store struct {
	client     *milvusclient.Client
	collection string
	dimension  int
}

// New connects to Milvus and returns a Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = DefaultDimension
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := milvusclient.New(connectCtx, &milvusclient.ClientConfig{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect to milvus at %s: %w", domain.ErrServiceUnavailable, cfg.Address, err)
	}

	return &Store{
		client:     client,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
	}, nil
}

// EnsureCollection creates the collection, vector index, and load state if
// they do not already exist. Safe to call on every startup.
func (s *Store) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.HasCollection(ctx, milvusclient.NewHasCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("check collection existence: %w", err)
	}

	if !exists {
		schema := entity.NewSchema().
			WithName(s.collection).
			WithDescription("utility bill chunks with embeddings").
			WithField(entity.NewField().
				WithName(fieldChunkID).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(64).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(fieldEmbedding).
				WithDataType(entity.FieldTypeFloatVector).
				WithDim(int64(s.dimension))).
			WithField(entity.NewField().
				WithName(fieldDocumentID).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(1024)).
			WithField(entity.NewField().
				WithName(fieldContentVersion).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(128)).
			WithField(entity.NewField().
				WithName(fieldChunkIndex).
				WithDataType(entity.FieldTypeInt64)).
			WithField(entity.NewField().
				WithName(fieldSourceText).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(65535))

		if err := s.client.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(s.collection, schema)); err != nil {
			return fmt.Errorf("create collection %s: %w", s.collection, err)
		}

		idx := index.NewHNSWIndex(entity.COSINE, 16, 200)
		createTask, err := s.client.CreateIndex(ctx, milvusclient.NewCreateIndexOption(s.collection, fieldEmbedding, idx))
		if err != nil {
			return fmt.Errorf("create vector index: %w", err)
		}
		if err := createTask.Await(ctx); err != nil {
			return fmt.Errorf("wait for vector index: %w", err)
		}
	}

	loadTask, err := s.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(s.collection))
	if err != nil {
		return fmt.Errorf("load collection %s: %w", s.collection, err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return fmt.Errorf("wait for collection load: %w", err)
	}

	return nil
}

// GetVersion returns the content version currently indexed for a document.
// Returns domain.ErrNotFound when the document has no indexed chunks.
func (s *Store) GetVersion(ctx context.Context, documentID string) (string, error) {
	result, err := s.client.Query(ctx, milvusclient.NewQueryOption(s.collection).
		WithFilter(fmt.Sprintf("%s == %q", fieldDocumentID, documentID)).
		WithOutputFields(fieldContentVersion).
		WithLimit(1))
	if err != nil {
		return "", fmt.Errorf("query version of %s: %w", documentID, err)
	}

	col := result.GetColumn(fieldContentVersion)
	if col == nil || col.Len() == 0 {
		return "", fmt.Errorf("%w: document %s is not indexed", domain.ErrNotFound, documentID)
	}

	version, err := col.GetAsString(0)
	if err != nil {
		return "", fmt.Errorf("read version of %s: %w", documentID, err)
	}
	return version, nil
}

// UpsertBatch writes a batch of chunk records. The deterministic chunk ID is
// the primary key, so re-ingesting unchanged content overwrites in place.
// The batch is flushed before returning so a subsequent search sees it.
func (s *Store) UpsertBatch(ctx context.Context, records []driven.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	chunkIDs := make([]string, len(records))
	embeddings := make([][]float32, len(records))
	documentIDs := make([]string, len(records))
	versions := make([]string, len(records))
	indexes := make([]int64, len(records))
	texts := make([]string, len(records))

	for i, rec := range records {
		if len(rec.Embedding) != s.dimension {
			return fmt.Errorf("%w: record %s has %d dimensions, want %d",
				domain.ErrIndexWrite, rec.ChunkID, len(rec.Embedding), s.dimension)
		}
		chunkIDs[i] = rec.ChunkID
		embeddings[i] = rec.Embedding
		documentIDs[i] = rec.DocumentID
		versions[i] = rec.ContentVersion
		indexes[i] = int64(rec.ChunkIndex)
		texts[i] = rec.SourceText
	}

	_, err := s.client.Upsert(ctx, milvusclient.NewColumnBasedInsertOption(s.collection,
		column.NewColumnVarChar(fieldChunkID, chunkIDs),
		column.NewColumnFloatVector(fieldEmbedding, s.dimension, embeddings),
		column.NewColumnVarChar(fieldDocumentID, documentIDs),
		column.NewColumnVarChar(fieldContentVersion, versions),
		column.NewColumnInt64(fieldChunkIndex, indexes),
		column.NewColumnVarChar(fieldSourceText, texts),
	))
	if err != nil {
		return fmt.Errorf("%w: upsert %d records: %w", domain.ErrIndexWrite, len(records), err)
	}

	flushTask, err := s.client.Flush(ctx, milvusclient.NewFlushOption(s.collection))
	if err != nil {
		return fmt.Errorf("%w: flush collection: %w", domain.ErrIndexWrite, err)
	}
	if err := flushTask.Await(ctx); err != nil {
		return fmt.Errorf("%w: wait for flush: %w", domain.ErrIndexWrite, err)
	}

	return nil
}

// DeleteVersion removes every record of a document except those belonging to
// keepVersion. Called after an upsert of the new version succeeds, so the
// index never loses a document mid-reindex.
func (s *Store) DeleteVersion(ctx context.Context, documentID, keepVersion string) error {
	expr := fmt.Sprintf("%s == %q && %s != %q",
		fieldDocumentID, documentID, fieldContentVersion, keepVersion)
	if _, err := s.client.Delete(ctx, milvusclient.NewDeleteOption(s.collection).WithExpr(expr)); err != nil {
		return fmt.Errorf("%w: delete stale versions of %s: %w", domain.ErrIndexWrite, documentID, err)
	}
	return nil
}

// Search returns the topK records nearest to the query vector, ordered by
// descending score with chunk ID as a stable tiebreak.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]driven.ScoredRecord, error) {
	results, err := s.client.Search(ctx, milvusclient.NewSearchOption(
		s.collection,
		topK,
		[]entity.Vector{entity.FloatVector(vector)},
	).WithANNSField(fieldEmbedding).
		WithSearchParam("ef", "64").
		WithOutputFields(fieldDocumentID, fieldContentVersion, fieldChunkIndex, fieldSourceText))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	res := results[0]
	scored := make([]driven.ScoredRecord, 0, res.ResultCount)
	for i := 0; i < res.ResultCount; i++ {
		rec := driven.ScoredRecord{Score: float64(res.Scores[i])}

		if idCol, ok := res.IDs.(*column.ColumnVarChar); ok {
			rec.ChunkID = idCol.Data()[i]
		}

		for _, field := range res.Fields {
			switch col := field.(type) {
			case *column.ColumnVarChar:
				switch col.Name() {
				case fieldDocumentID:
					rec.DocumentID = col.Data()[i]
				case fieldContentVersion:
					rec.ContentVersion = col.Data()[i]
				case fieldSourceText:
					rec.SourceText = col.Data()[i]
				}
			case *column.ColumnInt64:
				if col.Name() == fieldChunkIndex {
					rec.ChunkIndex = int(col.Data()[i])
				}
			}
		}

		scored = append(scored, rec)
	}

	SortByScore(scored)
	return scored, nil
}

// SortByScore orders records by descending score, breaking ties by ascending
// chunk ID so equal-score results come back in a stable order.
func SortByScore(records []driven.ScoredRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].ChunkID < records[j].ChunkID
	})
}

// Close releases the Milvus connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
