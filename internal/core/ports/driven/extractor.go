package driven

import "context"

// TextExtractor converts document bytes into plain text.
type TextExtractor interface {
	// Extract returns the plain text of a document. It wraps
	// domain.ErrExtraction when the bytes are unreadable or yield no text.
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}
