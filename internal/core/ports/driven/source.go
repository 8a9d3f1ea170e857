package driven

import (
	"context"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
)

// ContentSource lists and fetches documents from a storage backend.
//
// Implementations may include:
//   - S3-compatible object storage (AWS S3, MinIO)
//   - Local filesystem directories
type ContentSource interface {
	// List returns every document currently in the source with its
	// content version. A listing never contains the same ID twice.
	List(ctx context.Context) ([]domain.DocumentRef, error)

	// Get fetches the raw bytes of a document.
	Get(ctx context.Context, documentID string) ([]byte, error)
}
