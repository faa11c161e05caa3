// Package markdown renders article bodies to plain text for the console.
// The interactive picker shows a one-line excerpt of each candidate
// article; rendering through the markdown parser first keeps link targets,
// emphasis markers and fence lines out of the preview.
package markdown

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func toHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags,
	}
	renderer := html.NewRenderer(opts)
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// ToPlainText renders md and strips the resulting HTML tags.
func ToPlainText(md []byte) string {
	return stripHTMLTags(toHTML(md))
}

// Excerpt returns the first maxRunes runes of the plain-text rendering of
// md, collapsed onto a single line. An ellipsis is appended when the text
// was truncated.
func Excerpt(md string, maxRunes int) string {
	plain := strings.Join(strings.Fields(ToPlainText([]byte(md))), " ")
	runes := []rune(plain)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return plain
	}
	return string(runes[:maxRunes]) + "..."
}

func stripHTMLTags(htmlContent string) string {
	var result strings.Builder
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
