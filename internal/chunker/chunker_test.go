package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		c, err := New(1000, 200)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Size() != 1000 || c.Overlap() != 200 {
			t.Errorf("expected 1000/200, got %d/%d", c.Size(), c.Overlap())
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if _, err := New(0, 0); err == nil {
			t.Error("expected error for zero size")
		}
	})

	t.Run("overlap equals size", func(t *testing.T) {
		if _, err := New(100, 100); err == nil {
			t.Error("expected error when overlap equals size")
		}
	})

	t.Run("overlap exceeds size", func(t *testing.T) {
		if _, err := New(100, 150); err == nil {
			t.Error("expected error when overlap exceeds size")
		}
	})

	t.Run("negative overlap", func(t *testing.T) {
		if _, err := New(100, -1); err == nil {
			t.Error("expected error for negative overlap")
		}
	})
}

func TestChunk_EmptyText(t *testing.T) {
	c, _ := New(100, 20)
	chunks := c.Chunk("doc.pdf", "v1", "")
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
}

func TestChunk_SmallText(t *testing.T) {
	c, _ := New(100, 20)
	text := "January electricity usage: 412 kWh."

	chunks := c.Chunk("doc.pdf", "v1", text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Error("expected chunk text to match input")
	}
	if chunks[0].Index != 0 || chunks[0].StartOffset != 0 {
		t.Errorf("expected index 0 at offset 0, got %d at %d", chunks[0].Index, chunks[0].StartOffset)
	}
	if chunks[0].Length != len(text) {
		t.Errorf("expected length %d, got %d", len(text), chunks[0].Length)
	}
}

func TestChunk_WindowPlacement(t *testing.T) {
	// 2500 bytes at size 1000 / overlap 200 must yield windows starting at
	// 0, 800, 1600 and 2400, with the last one truncated to 100 bytes.
	c, _ := New(1000, 200)
	text := strings.Repeat("x", 2500)

	chunks := c.Chunk("bill.pdf", "v1", text)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	wantStarts := []int{0, 800, 1600, 2400}
	for i, want := range wantStarts {
		if chunks[i].StartOffset != want {
			t.Errorf("chunk %d: expected start %d, got %d", i, want, chunks[i].StartOffset)
		}
		if chunks[i].Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunks[i].Index)
		}
	}
	if chunks[3].Length != 100 {
		t.Errorf("expected last chunk length 100, got %d", chunks[3].Length)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c, _ := New(50, 10)
	text := strings.Repeat("utility bill text ", 20)

	first := c.Chunk("doc.pdf", "abc123", text)
	second := c.Chunk("doc.pdf", "abc123", text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d: IDs differ: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].StartOffset != second[i].StartOffset || first[i].Text != second[i].Text {
			t.Errorf("chunk %d: boundaries differ", i)
		}
	}
}

func TestChunk_IDChangesWithVersion(t *testing.T) {
	c, _ := New(50, 10)
	text := "the same text in two versions"

	v1 := c.Chunk("doc.pdf", "v1", text)
	v2 := c.Chunk("doc.pdf", "v2", text)

	if v1[0].ID == v2[0].ID {
		t.Error("expected different chunk IDs for different content versions")
	}
}

func TestChunkID_Stable(t *testing.T) {
	a := ChunkID("doc.pdf", "v1", 3)
	b := ChunkID("doc.pdf", "v1", 3)
	if a != b {
		t.Errorf("expected stable IDs, got %s and %s", a, b)
	}
	if a == ChunkID("doc.pdf", "v1", 4) {
		t.Error("expected different IDs for different indexes")
	}
}
