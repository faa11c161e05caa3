// Package chunker splits long prose runs into pieces small enough for a
// translation backend to accept in one request. Splitting is lossless:
// concatenating the returned chunks reproduces the input exactly, so the
// reassembled article keeps its whitespace and markdown block structure.
package chunker

import (
	"strings"
	"unicode"
)

// DefaultMaxRunes matches the per-request limit the pipeline has always
// used for prose runs.
const DefaultMaxRunes = 2000

// Chunk splits text into pieces of at most maxRunes code points each.
// Split points are chosen, in order of preference, at:
//  1. a paragraph boundary (blank line)
//  2. sentence-ending punctuation followed by whitespace
//  3. any whitespace
//  4. a hard cut at maxRunes
//
// Chunks are not trimmed; the concatenation of the result equals text.
// If text already fits, a single-element slice is returned. maxRunes <= 0
// means unlimited.
func Chunk(text string, maxRunes int) []string {
	if maxRunes <= 0 || len([]rune(text)) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	rest := text
	for len([]rune(rest)) > maxRunes {
		cut := splitPoint(rest, maxRunes)
		chunks = append(chunks, rest[:cut])
		rest = rest[cut:]
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

// splitPoint returns the byte offset at which to cut rest so the first part
// holds at most maxRunes runes, preferring natural boundaries searched
// backwards from the limit.
func splitPoint(rest string, maxRunes int) int {
	runes := []rune(rest)
	window := runes[:maxRunes]
	prefix := string(window)

	// Paragraph boundary: cut after the blank line.
	if idx := strings.LastIndex(prefix, "\n\n"); idx > 0 {
		return idx + 2
	}

	// Sentence end: punctuation followed by whitespace, cut after the space.
	for i := len(window) - 2; i > 0; i-- {
		r := window[i]
		if (r == '.' || r == '!' || r == '?' || r == '。' || r == '！' || r == '？') && unicode.IsSpace(window[i+1]) {
			return len(string(window[:i+2]))
		}
	}

	// Any whitespace: cut after it so the space stays with the left chunk.
	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return len(string(window[:i+1]))
		}
	}

	return len(prefix)
}
