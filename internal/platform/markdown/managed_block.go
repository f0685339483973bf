package markdown

import "strings"

// ReplaceManagedBlock swaps the text between the markers for generated,
// appending a fresh block when the markers are absent. Everything outside
// the markers is preserved.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// ManagedBlock returns the text between the markers, if present.
func ManagedBlock(body, startMarker, endMarker string) (string, bool) {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	if start < 0 || end <= start {
		return "", false
	}
	inner := body[start+len(startMarker) : end]
	return strings.Trim(inner, "\n"), true
}
