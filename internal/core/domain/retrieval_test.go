package domain

import (
	"reflect"
	"testing"
)

func TestCitation_Format(t *testing.T) {
	got := Citation("bill-march.pdf", 2)
	if got != "[bill-march.pdf#2]" {
		t.Errorf("Citation = %q", got)
	}
}

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "none",
			text: "no citations here",
			want: nil,
		},
		{
			name: "single",
			text: "the total was $80 [march.pdf#2].",
			want: []string{"[march.pdf#2]"},
		},
		{
			name: "ordered and deduplicated",
			text: "$80 [march.pdf#2], later $95 [april.pdf#0], again [march.pdf#2].",
			want: []string{"[march.pdf#2]", "[april.pdf#0]"},
		},
		{
			name: "ignores malformed tags",
			text: "bracketed [note] and [file.pdf] lack a chunk index",
			want: nil,
		},
		{
			name: "round trips rendered tags",
			text: "see " + Citation("2024/april.pdf", 11),
			want: []string{"[2024/april.pdf#11]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
