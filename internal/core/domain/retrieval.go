package domain

import (
	"fmt"
	"regexp"
)

// RetrievedChunk is a single similarity-search hit, shaped for citation.
type RetrievedChunk struct {
	// ChunkID is the matched chunk's identifier.
	ChunkID string `json:"-"`

	// DocumentID is the document the chunk belongs to.
	DocumentID string `json:"document_id"`

	// ChunkIndex is the within-document position of the chunk.
	ChunkIndex int `json:"chunk_index"`

	// Score is the cosine similarity to the query.
	Score float64 `json:"score"`

	// Text is the chunk content.
	Text string `json:"text"`

	// CitationTag is the rendered reference, e.g. "[bill-march.pdf#2]".
	CitationTag string `json:"citation_tag"`
}

// Answer is a model-generated reply together with its provenance.
type Answer struct {
	// Text is the model's final answer.
	Text string

	// Citations are the citation tags of every chunk surfaced to the model
	// through tool results during the turn.
	Citations []string

	// Grounded reports whether every tag cited in Text was actually present
	// in the retrieved set. An answer citing unseen tags is not grounded.
	Grounded bool
}

// citationPattern matches rendered citation tags like "[invoice.pdf#3]".
var citationPattern = regexp.MustCompile(`\[[^\[\]#\s]+#\d+\]`)

// Citation renders the citation tag for a document/chunk pair.
func Citation(documentID string, chunkIndex int) string {
	return fmt.Sprintf("[%s#%d]", documentID, chunkIndex)
}

// ExtractCitations returns the citation tags appearing in text, in order of
// first appearance, without duplicates.
func ExtractCitations(text string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, tag := range citationPattern.FindAllString(text, -1) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
