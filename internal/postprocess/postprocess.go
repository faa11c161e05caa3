// Package postprocess repairs markdown that machine translation tends to
// break. Translation backends insert spaces around punctuation; inside
// table separators, image markers, paths and inline math that extra space
// changes how the markdown renders.
package postprocess

import "strings"

// spacingFixes maps translator-damaged sequences to their markdown-safe
// forms. Applied in order; " / " needs the "/ " pass before the " /" pass
// to collapse fully.
var spacingFixes = [...][2]string{
	{": |", ":|"},
	{"|: ", "|:"},
	{"\" ", "\""},
	{" \"", "\""},
	{"/ ", "/"},
	{" /", "/"},
	{"\\ ", "\\"},
	{" \\", "\\"},
	{"$ ", "$"},
	{" $", "$"},
	{"! [", "!["},
}

// CleanSpacing removes redundant spaces that break markdown rendering.
// It is applied to translated prose only; code segments never pass
// through here.
func CleanSpacing(text string) string {
	for _, f := range spacingFixes {
		text = strings.ReplaceAll(text, f[0], f[1])
	}
	return text
}
