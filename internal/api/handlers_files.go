// handlers_files.go - File selection handlers
package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/intake"
	"github.com/pdf-extractor/backend/internal/models"
	"github.com/pdf-extractor/backend/internal/storage"
	"github.com/pdf-extractor/backend/internal/workflow"
	"github.com/rs/zerolog/log"
	"github.com/vincent-petithory/dataurl"
)

// FileHandlerImpl implements the FileHandler interface
type FileHandlerImpl struct {
	store     storage.Store
	sessions  Sessions
	validator intake.Validator
}

// NewFileHandler creates a new file handler instance
func NewFileHandler(store storage.Store, sessions Sessions, validator intake.Validator) FileHandler {
	return &FileHandlerImpl{
		store:     store,
		sessions:  sessions,
		validator: validator,
	}
}

// HandleSelectFile accepts a PDF as multipart/form-data (field "file")
func (h *FileHandlerImpl) HandleSelectFile(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	fh, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := fh.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	return h.accept(c, wf, fh.Filename, fh.Header.Get(echo.HeaderContentType), src, fh.Size)
}

// HandleSelectFileBase64 accepts a PDF as base64 JSON. Data may be a bare
// base64 payload or a data URL; a data URL's media type is used when the
// request names none.
func (h *FileHandlerImpl) HandleSelectFileBase64(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	var req selectFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := req.validate(); err != nil {
		return err
	}

	mediaType := req.MediaType
	var decoded []byte
	if strings.HasPrefix(req.Data, "data:") {
		du, err := dataurl.DecodeString(req.Data)
		if err != nil {
			return NewBadRequestError("invalid data URL", err)
		}
		if mediaType == "" {
			mediaType = du.MediaType.ContentType()
		}
		decoded = du.Data
	} else {
		var err error
		decoded, err = base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return NewBadRequestError("invalid base64 data", err)
		}
	}

	r := bytes.NewReader(decoded)
	return h.accept(c, wf, req.Name, mediaType, r, r.Size())
}

// HandleClearFile resets the selection to "no file chosen"
func (h *FileHandlerImpl) HandleClearFile(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)
	wf.Clear()
	return c.JSON(http.StatusOK, wf.Snapshot())
}

type pdfSource interface {
	io.Reader
	io.ReaderAt
}

// accept runs intake on src and, when it passes, spools it as the new selection.
func (h *FileHandlerImpl) accept(c echo.Context, wf *workflow.Workflow, name, mediaType string, src pdfSource, size int64) error {
	if err := h.validator.Validate(mediaType, src); err != nil {
		wf.Clear()
		if errors.Is(err, intake.ErrNotPDF) {
			log.Warn().Str("file", name).Str("type", mediaType).Msg("rejected non-PDF selection")
			return NewInvalidFileTypeError(err)
		}
		return NewBadRequestError("could not read file", err)
	}

	info, err := h.store.Save(name, models.MediaTypePDF, src)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	file := *info
	file.Pages = intake.PageCount(src, size)
	wf.Select(&file)

	log.Info().Str("file", file.Name).Int64("size", file.Size).Int("pages", file.Pages).Msg("file selected")
	return c.JSON(http.StatusCreated, wf.Snapshot())
}

type selectFileRequest struct {
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Data      string `json:"data"` // Base64 payload or data URL
}

func (r *selectFileRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}
