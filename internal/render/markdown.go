// Package render turns model markdown into the HTML shown in the output
// surface and exported to office files.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to HTML with GitHub-flavored tables,
// strikethrough, autolinks and task lists.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer. Raw HTML in the markdown is omitted.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render parses markdown and returns the HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
