package markdown

import (
	"regexp"
	"strings"
)

var (
	// "[text" with no closing bracket before the end of the line.
	unclosedBracket = regexp.MustCompile(`(?m)\[([^\[\]\n]*?)([ \t\r]*)$`)
	// "[text](http://cut-off" running to the end of the document.
	unterminatedLink = regexp.MustCompile(`\[([^\[\]]*?)\]\s*(\([^)]*$)`)
	emptyLink        = regexp.MustCompile(`\[([^\[\]]*?)\]\(\)`)
)

// Clean repairs links that generated Markdown commonly leaves broken,
// keeping the link text and dropping the markup.
func Clean(text string) string {
	text = unclosedBracket.ReplaceAllString(text, "${1}${2}")
	text = unterminatedLink.ReplaceAllString(text, "${1}")
	text = emptyLink.ReplaceAllString(text, "${1}")
	return text
}

// SanitizeFilename keeps ASCII letters, digits and "-_.() ", then trims
// surrounding spaces.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("-_.() ", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
