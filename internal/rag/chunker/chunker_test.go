package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const (
	testSize    = 1000
	testOverlap = 200
)

func lectureText(paragraphs int) string {
	var b strings.Builder
	for i := 0; i < paragraphs; i++ {
		b.WriteString("A linked list stores elements in nodes. Each node holds a value and a pointer to the next node. ")
		b.WriteString("Traversal is linear and insertion at the head is constant time.\n\n")
	}
	return b.String()
}

func TestSplit_ShortInputIsSingleChunk(t *testing.T) {
	s := New(testSize, testOverlap)
	text := "Recursion is a function calling itself."

	chunks := s.Split(text)

	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected single identity chunk, got %d chunks", len(chunks))
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s := New(testSize, testOverlap)
	if got := s.Split(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	s := New(testSize, testOverlap)
	chunks := s.Split(lectureText(40))

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) == 0 {
			t.Errorf("chunk %d is empty", i)
		}
		if len(c) > testSize {
			t.Errorf("chunk %d length %d exceeds limit %d", i, len(c), testSize)
		}
	}
}

func TestSplit_ExactOverlapAtBoundaries(t *testing.T) {
	s := New(testSize, testOverlap)
	chunks := s.Split(lectureText(40))

	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-testOverlap:]
		head := chunks[i+1][:testOverlap]
		if tail != head {
			t.Fatalf("chunks %d and %d do not share %d bytes at their boundary", i, i+1, testOverlap)
		}
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	// Run against both boundary-rich text and a pathological run with no
	// separators at all, which forces hard cuts.
	texts := map[string]string{
		"paragraphs":    lectureText(40),
		"no_separators": strings.Repeat("x", 5321),
	}

	s := New(testSize, testOverlap)
	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			chunks := s.Split(text)

			var b strings.Builder
			b.WriteString(chunks[0])
			for _, c := range chunks[1:] {
				b.WriteString(c[testOverlap:])
			}
			if b.String() != text {
				t.Errorf("concatenated non-overlap portions do not reconstruct the input (got %d bytes, want %d)", b.Len(), len(text))
			}
		})
	}
}

func TestSplit_HardCutKeepsRunesIntact(t *testing.T) {
	// No separators anywhere, so every cut is a hard cut, and the rune width
	// does not divide the chunk size.
	s := New(testSize, testOverlap)
	text := strings.Repeat("世", 700)

	chunks := s.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
		if len(c) > testSize {
			t.Errorf("chunk %d length %d exceeds limit %d", i, len(c), testSize)
		}
	}
	if !strings.HasPrefix(text, chunks[0]) {
		t.Error("first chunk is not a prefix of the input")
	}
	if !strings.HasSuffix(text, chunks[len(chunks)-1]) {
		t.Error("last chunk is not a suffix of the input")
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(testSize, testOverlap)
	text := lectureText(25)

	first := s.Split(text)
	second := s.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	s := New(100, 20)
	text := strings.Repeat("word ", 12) + "\n\n" + strings.Repeat("word ", 40)

	chunks := s.Split(text)

	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0])
	}
}
