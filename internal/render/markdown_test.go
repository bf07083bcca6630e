package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains []string
	}{
		{
			name:     "heading and paragraph",
			markdown: "# Title\n\nHello",
			contains: []string{"<h1>Title</h1>", "<p>Hello</p>"},
		},
		{
			name:     "table",
			markdown: "| A | B |\n|---|---|\n| 1 | 2 |\n",
			contains: []string{"<table>", "<th>A</th>", "<td>2</td>"},
		},
		{
			name:     "list",
			markdown: "- one\n- two\n",
			contains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:     "raw html omitted",
			markdown: "<script>alert(1)</script>\n",
			contains: []string{"raw HTML omitted"},
		},
	}

	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render(tt.markdown)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
		})
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer()
	first, err := r.Render("# Title\n\nHello")
	require.NoError(t, err)
	second, err := r.Render("# Title\n\nHello")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "<h1>Title</h1>\n<p>Hello</p>\n", first)
}

func TestRenderer_Empty(t *testing.T) {
	html, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
