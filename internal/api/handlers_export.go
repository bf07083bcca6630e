// handlers_export.go - Office document export handler
package api

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/export"
	"github.com/rs/zerolog/log"
)

// ExportHandlerImpl implements the ExportHandler interface
type ExportHandlerImpl struct {
	sessions Sessions
}

// NewExportHandler creates a new export handler instance
func NewExportHandler(sessions Sessions) ExportHandler {
	return &ExportHandlerImpl{sessions: sessions}
}

// HandleExport downloads the rendered output as a Word or Excel document.
// Without rendered output the request is a no-op (204).
func (h *ExportHandlerImpl) HandleExport(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		return NewNotFoundError("export format", c.Param("format"))
	}

	result, ok := wf.Result()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	doc, ok := export.Build(format, result.SourceName, result.HTML)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)

	log.Debug().Str("format", string(format)).Str("file", doc.FileName).Msg("export")
	return c.Blob(http.StatusOK, doc.MIMEType, doc.Content)
}
