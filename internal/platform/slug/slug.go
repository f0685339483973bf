package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns free text into a lowercase, dash separated identifier.
// Accents are folded so "Café Fast" becomes "cafe-fast".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(stripMarks(input)))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

func stripMarks(input string) string {
	decomposed := norm.NFD.String(input)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
