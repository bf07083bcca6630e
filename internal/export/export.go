// Package export wraps rendered HTML in the minimal document envelope that
// Word and Excel open as native documents.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an export target.
type Format string

const (
	FormatWord  Format = "word"
	FormatExcel Format = "excel"
)

const fallbackBaseName = "document"

type formatSpec struct {
	mimeType  string
	extension string
	namespace string
}

var formats = map[Format]formatSpec{
	FormatWord: {
		mimeType:  "application/vnd.ms-word",
		extension: ".doc",
		namespace: "xmlns:w='urn:schemas-microsoft-com:office:word'",
	},
	FormatExcel: {
		mimeType:  "application/vnd.ms-excel",
		extension: ".xls",
		namespace: "xmlns:x='urn:schemas-microsoft-com:office:excel'",
	},
}

// Document is a ready-to-download export.
type Document struct {
	FileName string
	MIMEType string
	Content  []byte
}

// ParseFormat maps a route parameter to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("unknown export format: %s", s)
	}
	return f, nil
}

// Envelope wraps an HTML fragment in the office document shell.
// The fragment is inserted unchanged.
func Envelope(f Format, content string) string {
	spec := formats[f]

	var b strings.Builder
	b.WriteString("<html xmlns:o='urn:schemas-microsoft-com:office:office' ")
	b.WriteString(spec.namespace)
	b.WriteString(" xmlns='http://www.w3.org/TR/REC-html40'>")
	b.WriteString("<head><meta charset='utf-8'><title>Export</title></head><body>")
	b.WriteString(content)
	b.WriteString("</body></html>")
	return b.String()
}

// FileName derives the export name from the source file name: the last
// extension is replaced by the format's extension.
func FileName(f Format, sourceName string) string {
	base := filepath.Base(strings.ReplaceAll(sourceName, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = fallbackBaseName
	}
	return base + formats[f].extension
}

// Build returns the export for the rendered HTML, or false when there is
// nothing to export.
func Build(f Format, sourceName, html string) (*Document, bool) {
	if strings.TrimSpace(html) == "" {
		return nil, false
	}
	return &Document{
		FileName: FileName(f, sourceName),
		MIMEType: formats[f].mimeType,
		Content:  []byte(Envelope(f, html)),
	}, true
}
