package textsplit

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators orders break candidates from coarsest to finest:
// paragraph break, line break, sentence punctuation, clause punctuation,
// plain space, and finally a hard character boundary.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ", ", " ", ""}

// Splitter cuts text into chunks of at most chunkSize characters, carrying
// roughly overlap characters of trailing context into the next chunk so
// retrieval keeps context across boundaries. Output is deterministic.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 8
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: DefaultSeparators,
	}
}

// Split returns the ordered chunk sequence for text. Empty or whitespace-only
// input yields nil; callers treat that as "no extractable content".
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitRecursive(text, s.separators)
}

func (s *Splitter) splitRecursive(text string, separators []string) []string {
	// Pick the coarsest separator actually present in this piece.
	separator := separators[len(separators)-1]
	var remaining []string
	for i, sep := range separators {
		if sep == "" {
			separator = ""
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	if separator == "" {
		return s.hardSlice(text)
	}

	splits := splitAfter(text, separator)

	var final []string
	var fitting []string
	for _, sp := range splits {
		if utf8.RuneCountInString(sp) <= s.chunkSize {
			fitting = append(fitting, sp)
			continue
		}
		// A single segment blew the budget: flush what fits, then split the
		// oversized segment with the finer separators.
		if len(fitting) > 0 {
			final = append(final, s.merge(fitting)...)
			fitting = nil
		}
		if len(remaining) == 0 {
			final = append(final, s.hardSlice(sp)...)
		} else {
			final = append(final, s.splitRecursive(sp, remaining)...)
		}
	}
	if len(fitting) > 0 {
		final = append(final, s.merge(fitting)...)
	}
	return final
}

// merge greedily packs segments into chunks. When a chunk is emitted, its
// last overlap characters seed the next chunk.
func (s *Splitter) merge(splits []string) []string {
	var chunks []string
	cur := ""
	carryOnly := true // cur currently holds only overlap carried from the previous chunk
	for _, sp := range splits {
		if !carryOnly && utf8.RuneCountInString(cur)+utf8.RuneCountInString(sp) > s.chunkSize {
			if strings.TrimSpace(cur) != "" {
				chunks = append(chunks, cur)
			}
			cur = tailRunes(cur, s.overlap)
			carryOnly = true
		}
		cur += sp
		carryOnly = false
	}
	if !carryOnly && strings.TrimSpace(cur) != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// hardSlice is the character-boundary fallback: fixed windows advanced by
// chunkSize-overlap, so consecutive slices share overlap characters.
func (s *Splitter) hardSlice(text string) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + s.chunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}
	return chunks
}

// splitAfter splits by sep keeping the separator attached to the preceding
// segment, so concatenating the segments reproduces the input exactly.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func tailRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
