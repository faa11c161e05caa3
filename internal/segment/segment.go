// Package segment splits a markdown article body into an ordered sequence
// of prose and fenced-code spans, and stitches translated spans back into a
// single document. Code spans are opaque to the rest of the pipeline: they
// are carried through translation byte-for-byte.
package segment

import (
	"fmt"
	"strings"
)

// Kind classifies a span of an article body.
type Kind int

const (
	// KindProse marks text outside any fenced code block; eligible for
	// translation.
	KindProse Kind = iota
	// KindCode marks text inside a fenced code block, including the fence
	// markers themselves; never translated.
	KindCode
)

func (k Kind) String() string {
	if k == KindCode {
		return "code"
	}
	return "prose"
}

// Segment is a contiguous substring of an article body.
type Segment struct {
	Kind Kind
	Text string
}

// fence is the only code-block delimiter recognized. Language tags after an
// opening fence (```go, ```py) are part of the code span.
const fence = "```"

// Split produces an ordered, gap-free, non-overlapping cover of body.
// Concatenating the returned segment texts, in order, reproduces body
// exactly.
//
// A code segment runs from an opening fence marker through the first
// closing marker; the newline terminating the closing fence line is
// included so surrounding prose keeps its own line structure. An opening
// marker with no matching close extends the code segment to the end of the
// document, so an unterminated block is never sent for translation.
// Nested fences are not recognized.
//
// Empty input yields a nil slice.
func Split(body string) []Segment {
	if body == "" {
		return nil
	}

	var segs []Segment
	rest := body

	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			if rest != "" {
				segs = append(segs, Segment{Kind: KindProse, Text: rest})
			}
			return segs
		}

		if open > 0 {
			segs = append(segs, Segment{Kind: KindProse, Text: rest[:open]})
		}
		rest = rest[open:]

		closing := strings.Index(rest[len(fence):], fence)
		if closing < 0 {
			// Unterminated fence: the remainder is code.
			segs = append(segs, Segment{Kind: KindCode, Text: rest})
			return segs
		}

		end := len(fence) + closing + len(fence)
		if end < len(rest) && rest[end] == '\n' {
			end++
		}
		segs = append(segs, Segment{Kind: KindCode, Text: rest[:end]})
		rest = rest[end:]

		if rest == "" {
			return segs
		}
	}
}

// Reassemble concatenates texts in order into one document. texts must be
// parallel to segments: same length, same order, with code positions holding
// the original text and prose positions holding the (possibly translated)
// replacement. No segment is dropped, duplicated, or reordered.
func Reassemble(segments []Segment, texts []string) (string, error) {
	if len(segments) != len(texts) {
		return "", fmt.Errorf("segment count mismatch: %d segments, %d texts", len(segments), len(texts))
	}

	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t)
	}
	return b.String(), nil
}

// Texts returns the segment texts in order. Useful as the starting parallel
// slice for Reassemble.
func Texts(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Text
	}
	return out
}
