package chunker

import (
	"strings"
	"unicode/utf8"
)

// Splitter cuts lecture text into chunks of at most Size bytes. Consecutive
// chunks share Overlap bytes at their boundary, so concatenating each chunk
// minus its leading Overlap bytes reconstructs the input. The shared region
// shrinks by up to three bytes when a hard cut lands inside a multibyte rune,
// since chunk boundaries never split one.
type Splitter struct {
	size    int
	overlap int
}

// separators ordered from best to worst cut point. A cut lands just after the
// separator; when none fits in the window the text is cut hard at the limit.
var separators = []string{"\n\n", "\n", ". ", " "}

func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split is deterministic: the same text always yields the same chunks. Empty
// input yields no chunks; non-empty input never yields an empty chunk.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + s.size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			return chunks
		}
		cut := s.cutPoint(text, start, end)
		chunks = append(chunks, text[start:cut])
		start = cut - s.overlap
		for start < len(text) && !utf8.RuneStart(text[start]) {
			start++
		}
	}
}

// cutPoint picks the end of the next chunk within (start+overlap, end]. The
// lower bound keeps every cut past the overlap carried in from the previous
// chunk, which guarantees forward progress.
func (s *Splitter) cutPoint(text string, start, end int) int {
	min := start + s.overlap + 1
	for _, sep := range separators {
		if i := strings.LastIndex(text[min:end], sep); i >= 0 {
			return min + i + len(sep)
		}
	}
	// Hard cut. Back off to a rune start so the chunk stays valid UTF-8.
	cut := end
	for cut > min && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}
