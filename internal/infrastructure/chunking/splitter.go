package chunking

import (
	"strings"
	"unicode/utf8"
)

// Splitter cuts whitespace-tokenized text into fixed-size, non-overlapping
// word chunks, preserving document order.
type Splitter struct {
	ChunkWords int
}

func NewSplitter(chunkWords int) *Splitter {
	if chunkWords <= 0 {
		chunkWords = 700
	}
	return &Splitter{ChunkWords: chunkWords}
}

func (s *Splitter) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	out := make([]string, 0, len(words)/s.ChunkWords+1)
	for start := 0; start < len(words); start += s.ChunkWords {
		end := start + s.ChunkWords
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
	}
	return out
}

// ClipBytes returns a prefix of s no longer than max bytes, backing up so a
// multi-byte rune is never split.
func ClipBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
