package audio

import (
	"regexp"
	"strings"
)

var (
	mdEmphasis = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
	mdCode     = regexp.MustCompile("`{1,3}([^`]*)`{1,3}")
	mdHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	whitespace = regexp.MustCompile(`\s+`)
)

// CleanText strips markdown emphasis and collapses whitespace before
// synthesis; the audio engine has no notion of markdown.
func CleanText(text string) string {
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdCode.ReplaceAllString(text, "$1")
	text = mdEmphasis.ReplaceAllString(text, "$1")
	text = mdHeading.ReplaceAllString(text, "")

	var b strings.Builder
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(whitespace.ReplaceAllString(b.String(), " "))
}
