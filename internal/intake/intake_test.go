package intake

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CheckMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		wantErr   bool
	}{
		{name: "pdf", mediaType: "application/pdf", wantErr: false},
		{name: "pdf with surrounding spaces", mediaType: " application/pdf ", wantErr: true},
		{name: "upper case", mediaType: "Application/PDF", wantErr: true},
		{name: "png", mediaType: "image/png", wantErr: true},
		{name: "empty", mediaType: "", wantErr: true},
		{name: "octet stream", mediaType: "application/octet-stream", wantErr: true},
		{name: "pdf with parameters", mediaType: "application/pdf; charset=binary", wantErr: true},
		{name: "x-pdf alias", mediaType: "application/x-pdf", wantErr: true},
	}

	v := Validator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.CheckMediaType(tt.mediaType)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNotPDF))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_CheckContent(t *testing.T) {
	pdfBody := bytes.NewReader([]byte("%PDF-1.7\n..."))
	pngBody := bytes.NewReader([]byte("\x89PNG\r\n\x1a\n"))
	short := bytes.NewReader([]byte("%P"))

	t.Run("permissive by default", func(t *testing.T) {
		v := Validator{}
		assert.NoError(t, v.CheckContent(pngBody))
	})

	t.Run("signature check accepts pdf", func(t *testing.T) {
		v := Validator{VerifySignature: true}
		assert.NoError(t, v.CheckContent(pdfBody))
	})

	t.Run("signature check rejects mislabeled file", func(t *testing.T) {
		v := Validator{VerifySignature: true}
		assert.ErrorIs(t, v.CheckContent(pngBody), ErrNotPDF)
	})

	t.Run("signature check rejects short file", func(t *testing.T) {
		v := Validator{VerifySignature: true}
		assert.ErrorIs(t, v.CheckContent(short), ErrNotPDF)
	})
}

func TestValidator_ValidateMislabeledPasses(t *testing.T) {
	// A non-PDF declared as application/pdf passes without signature checks.
	v := Validator{}
	assert.NoError(t, v.Validate("application/pdf", bytes.NewReader([]byte("plain text"))))
}

func TestPageCount_Malformed(t *testing.T) {
	data := []byte("not a pdf at all")
	assert.Equal(t, 0, PageCount(bytes.NewReader(data), int64(len(data))))
}

// minimalPDF builds a well-formed PDF with the given number of empty pages.
func minimalPDF(pages int) []byte {
	var objects []string
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	)
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		pages int
	}{
		{name: "single page", pages: 1},
		{name: "three pages", pages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := minimalPDF(tt.pages)
			assert.Equal(t, tt.pages, PageCount(bytes.NewReader(data), int64(len(data))))
		})
	}
}

func TestPageCount_PassesSignatureCheck(t *testing.T) {
	data := minimalPDF(1)
	v := Validator{VerifySignature: true}
	assert.NoError(t, v.Validate("application/pdf", bytes.NewReader(data)))
}
