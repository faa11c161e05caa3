package segment_test

import (
	"strings"
	"testing"

	"github.com/speaktech/transqiita/internal/segment"
)

func join(segs []segment.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestSplit_Empty(t *testing.T) {
	segs := segment.Split("")
	if len(segs) != 0 {
		t.Errorf("expected no segments for empty input, got %d", len(segs))
	}
}

func TestSplit_ProseOnly(t *testing.T) {
	body := "Just some markdown with **bold** and a list.\n- one\n- two\n"
	segs := segment.Split(body)

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Kind != segment.KindProse {
		t.Errorf("expected prose, got %v", segs[0].Kind)
	}
	if segs[0].Text != body {
		t.Errorf("expected segment to equal whole document")
	}
}

func TestSplit_ProseCodeProse(t *testing.T) {
	body := "Hello **world**.\n```py\nprint(1)\n```\nBye."
	segs := segment.Split(body)

	want := []segment.Segment{
		{Kind: segment.KindProse, Text: "Hello **world**.\n"},
		{Kind: segment.KindCode, Text: "```py\nprint(1)\n```\n"},
		{Kind: segment.KindProse, Text: "Bye."},
	}

	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %#v", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: expected %#v, got %#v", i, want[i], segs[i])
		}
	}
}

func TestSplit_UnterminatedFence(t *testing.T) {
	body := "intro\n```sh\nrm -rf /tmp/x\nand it never closes"
	segs := segment.Split(body)

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[1].Kind != segment.KindCode {
		t.Errorf("unterminated fence must be code, got %v", segs[1].Kind)
	}
	if !strings.HasSuffix(segs[1].Text, "never closes") {
		t.Errorf("code segment must extend to end of document, got %q", segs[1].Text)
	}
}

func TestSplit_BareFenceMarker(t *testing.T) {
	segs := segment.Split("```")
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Kind != segment.KindCode || segs[0].Text != "```" {
		t.Errorf("expected single code segment \"```\", got %#v", segs[0])
	}
}

func TestSplit_CodeAtStartAndEnd(t *testing.T) {
	body := "```\na\n```\nmiddle\n```\nb\n```"
	segs := segment.Split(body)

	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %#v", len(segs), segs)
	}
	if segs[0].Kind != segment.KindCode || segs[2].Kind != segment.KindCode {
		t.Errorf("expected code at both ends, got %v / %v", segs[0].Kind, segs[2].Kind)
	}
	if segs[1].Kind != segment.KindProse || segs[1].Text != "middle\n" {
		t.Errorf("expected prose \"middle\\n\", got %#v", segs[1])
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	docs := []string{
		"",
		"plain prose, no fences",
		"Hello **world**.\n```py\nprint(1)\n```\nBye.",
		"```go\nfmt.Println(\"hi\")\n```",
		"a\n```\nb",
		"```x``` tight ```y```",
		"fence with trailing text ```js\nlet a = 1;\n``` same line after",
		"日本語の本文です。\n```ruby\nputs 'こんにちは'\n```\n続きの本文。",
	}

	for _, doc := range docs {
		segs := segment.Split(doc)
		if got := join(segs); got != doc {
			t.Errorf("round-trip failed:\n  input:  %q\n  output: %q", doc, got)
		}
	}
}

func TestSplit_Idempotent(t *testing.T) {
	doc := "p1\n```\ncode\n```\np2\n```unterminated"
	first := segment.Split(doc)
	second := segment.Split(doc)

	if len(first) != len(second) {
		t.Fatalf("segment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segment %d differs between runs: %#v vs %#v", i, first[i], second[i])
		}
	}
}

func TestSplit_NoGapsNoOverlap(t *testing.T) {
	doc := "before\n```a\nx\n```\nmid\n```\ny\n```\nafter"
	segs := segment.Split(doc)

	offset := 0
	for i, s := range segs {
		if doc[offset:offset+len(s.Text)] != s.Text {
			t.Fatalf("segment %d does not start at offset %d", i, offset)
		}
		offset += len(s.Text)
	}
	if offset != len(doc) {
		t.Errorf("segments cover %d bytes of %d", offset, len(doc))
	}
}

func TestReassemble_LengthMismatch(t *testing.T) {
	segs := segment.Split("a\n```\nb\n```\nc")
	_, err := segment.Reassemble(segs, []string{"only one"})
	if err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestReassemble_CodeUntouched(t *testing.T) {
	doc := "Hello **world**.\n```py\nprint(1)\n```\nBye."
	segs := segment.Split(doc)

	texts := segment.Texts(segs)
	for i, s := range segs {
		if s.Kind == segment.KindProse {
			texts[i] = strings.ToUpper(s.Text)
		}
	}

	out, err := segment.Reassemble(segs, texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "```py\nprint(1)\n```\n") {
		t.Errorf("code block mutated: %q", out)
	}
	if !strings.Contains(out, "HELLO **WORLD**.") {
		t.Errorf("prose not replaced: %q", out)
	}
}

func TestReassemble_IdentityRoundTrip(t *testing.T) {
	doc := "p\n```\nc\n```\nq"
	segs := segment.Split(doc)
	out, err := segment.Reassemble(segs, segment.Texts(segs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != doc {
		t.Errorf("identity reassembly changed document:\n  in:  %q\n  out: %q", doc, out)
	}
}

func TestKindString(t *testing.T) {
	if segment.KindProse.String() != "prose" || segment.KindCode.String() != "code" {
		t.Errorf("unexpected kind names: %s / %s", segment.KindProse, segment.KindCode)
	}
}
