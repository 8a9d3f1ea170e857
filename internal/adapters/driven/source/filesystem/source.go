// Package filesystem provides a content source adapter for local directories.
// It is the development and test counterpart of the bucket source.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Source lists PDF files under a root directory. The content version is the
// SHA-256 of the file bytes, so it is content-addressed like an ETag.
type Source struct {
	root string
}

// New creates a filesystem content source rooted at dir.
func New(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: source dir %s: %w", domain.ErrConfig, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: source path %s is not a directory", domain.ErrConfig, dir)
	}
	return &Source{root: dir}, nil
}

// List walks the root and returns every PDF with its content hash.
func (s *Source) List(ctx context.Context) ([]domain.DocumentRef, error) {
	var refs []domain.DocumentRef

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		sum := sha256.Sum256(data)
		refs = append(refs, domain.DocumentRef{
			ID:             filepath.ToSlash(rel),
			ContentVersion: hex.EncodeToString(sum[:]),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	return refs, nil
}

// Get reads the bytes of a document by its relative path.
func (s *Source) Get(_ context.Context, documentID string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(documentID)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", documentID, err)
	}
	return data, nil
}
