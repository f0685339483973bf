package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter decodes the leading YAML block into out and returns the
// remaining body. Content without frontmatter leaves out untouched.
func SplitFrontmatter(content string, out any) (string, error) {
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	raw := rest[:idx]
	// Render separates the block from the body with one blank line.
	body := strings.TrimPrefix(rest[idx+len("\n---\n"):], "\n")

	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}

func RenderFrontmatter(meta any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	buf.WriteString("\n")
	buf.WriteString(body)
	return buf.String(), nil
}
