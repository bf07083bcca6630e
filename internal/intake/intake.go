// Package intake decides whether a user-supplied file may become the
// workflow's selected PDF.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdf-extractor/backend/internal/models"
)

// ErrNotPDF is returned for any file that is not accepted as a PDF.
var ErrNotPDF = errors.New("not a PDF file")

var pdfSignature = []byte("%PDF-")

// Validator checks declared media types and, optionally, file signatures.
type Validator struct {
	// VerifySignature rejects files whose first bytes are not "%PDF-".
	// Off by default: the declared media type alone decides.
	VerifySignature bool
}

// CheckMediaType accepts only the exact PDF media type, byte for byte.
func (v Validator) CheckMediaType(mediaType string) error {
	if mediaType != models.MediaTypePDF {
		return fmt.Errorf("%w: declared type %q", ErrNotPDF, mediaType)
	}
	return nil
}

// CheckContent verifies the PDF signature when VerifySignature is set.
func (v Validator) CheckContent(r io.ReaderAt) error {
	if !v.VerifySignature {
		return nil
	}

	head := make([]byte, len(pdfSignature))
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading signature: %w", err)
	}
	if !bytes.Equal(head[:n], pdfSignature) {
		return fmt.Errorf("%w: missing %%PDF- signature", ErrNotPDF)
	}
	return nil
}

// Validate runs both checks.
func (v Validator) Validate(mediaType string, r io.ReaderAt) error {
	if err := v.CheckMediaType(mediaType); err != nil {
		return err
	}
	return v.CheckContent(r)
}

// PageCount reads the page tree of a PDF. It returns 0 when the document
// cannot be parsed; a malformed body never rejects a file.
func PageCount(r io.ReaderAt, size int64) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return 0
	}
	return doc.NumPage()
}
