package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes text safe to print on a terminal: escape sequences are
// stripped and remaining control characters become U+FFFD. Newlines are
// kept so multi-line text still wraps per line.
func Sanitize(text string) string {
	text = ansi.Strip(text)
	if !strings.ContainsFunc(text, isControl) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteByte(' ')
		case isControl(r):
			sb.WriteRune('\uFFFD')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isControl(r rune) bool {
	if r == '\n' {
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}
