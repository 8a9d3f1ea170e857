// Package docconv provides a text extractor adapter using the docconv library.
package docconv

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"

	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/domain"
	"github.com/Alvan-Dmello/Intelligent-Utility-Bill-RAG/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// DefaultMimeType is assumed when the caller passes an empty mime type.
const DefaultMimeType = "application/pdf"

// Extractor converts PDF bytes to plain text via docconv, which shells out
// to pdftotext under the hood.
type Extractor struct{}

// New creates a docconv text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text body of a document. A document whose text
// layer is empty after trimming whitespace is reported as an extraction
// failure, since a scanned-image PDF yields no indexable content.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrExtraction)
	}
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	res, err := docconv.Convert(bytes.NewReader(data), mimeType, true)
	if err != nil {
		return "", fmt.Errorf("%w: convert %s: %w", domain.ErrExtraction, mimeType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return "", fmt.Errorf("%w: document has no extractable text", domain.ErrExtraction)
	}

	return text, nil
}
