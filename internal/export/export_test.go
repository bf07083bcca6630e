package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		source string
		word   string
		excel  string
	}{
		{source: "report.pdf", word: "report.doc", excel: "report.xls"},
		{source: "report", word: "report.doc", excel: "report.xls"},
		{source: "q3.final.pdf", word: "q3.final.doc", excel: "q3.final.xls"},
		{source: "REPORT.PDF", word: "REPORT.doc", excel: "REPORT.xls"},
		{source: ".pdf", word: "document.doc", excel: "document.xls"},
		{source: "", word: "document.doc", excel: "document.xls"},
		{source: "C:\\scans\\invoice.pdf", word: "invoice.doc", excel: "invoice.xls"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.word, FileName(FormatWord, tt.source))
			assert.Equal(t, tt.excel, FileName(FormatExcel, tt.source))
		})
	}
}

func TestEnvelope(t *testing.T) {
	content := "<h1>Title</h1>\n<table><tr><td>1</td></tr></table>"

	word := Envelope(FormatWord, content)
	assert.True(t, strings.HasPrefix(word, "<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word'"))
	assert.Contains(t, word, "<meta charset='utf-8'>")
	assert.Contains(t, word, "<body>"+content+"</body>")
	assert.True(t, strings.HasSuffix(word, "</body></html>"))

	excel := Envelope(FormatExcel, content)
	assert.Contains(t, excel, "xmlns:x='urn:schemas-microsoft-com:office:excel'")
	assert.Contains(t, excel, "<body>"+content+"</body>")
}

func TestBuild(t *testing.T) {
	t.Run("word document", func(t *testing.T) {
		doc, ok := Build(FormatWord, "report.pdf", "<p>Hello</p>")
		require.True(t, ok)
		assert.Equal(t, "report.doc", doc.FileName)
		assert.Equal(t, "application/vnd.ms-word", doc.MIMEType)
		assert.Contains(t, string(doc.Content), "<p>Hello</p>")
	})

	t.Run("excel document", func(t *testing.T) {
		doc, ok := Build(FormatExcel, "report", "<p>Hello</p>")
		require.True(t, ok)
		assert.Equal(t, "report.xls", doc.FileName)
		assert.Equal(t, "application/vnd.ms-excel", doc.MIMEType)
	})

	t.Run("no-op without content", func(t *testing.T) {
		doc, ok := Build(FormatWord, "report.pdf", "  ")
		assert.False(t, ok)
		assert.Nil(t, doc)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Word")
	require.NoError(t, err)
	assert.Equal(t, FormatWord, f)

	f, err = ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
