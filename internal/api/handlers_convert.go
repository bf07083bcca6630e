// handlers_convert.go - Conversion handler
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/workflow"
	"github.com/rs/zerolog/log"
)

// ConvertHandlerImpl implements the ConvertHandler interface
type ConvertHandlerImpl struct {
	sessions  Sessions
	converter workflow.Converter
}

// NewConvertHandler creates a new convert handler instance
func NewConvertHandler(sessions Sessions, converter workflow.Converter) ConvertHandler {
	return &ConvertHandlerImpl{
		sessions:  sessions,
		converter: converter,
	}
}

// HandleConvert runs one conversion of the selected file and answers with the
// resulting snapshot. The request blocks until the model call returns.
func (h *ConvertHandlerImpl) HandleConvert(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	// The model call has no deadline, so neither does this response
	if err := http.NewResponseController(c.Response()).SetWriteDeadline(time.Time{}); err != nil {
		log.Debug().Err(err).Msg("cannot lift write deadline for conversion")
	}

	_, err := wf.Convert(c.Request().Context(), h.converter)
	switch {
	case errors.Is(err, workflow.ErrNoFile):
		return NewNoFileSelectedError()
	case errors.Is(err, workflow.ErrBusy):
		return NewConversionInProgressError()
	case err != nil:
		return NewConversionFailedError(wf.Snapshot().Error, err)
	}

	return c.JSON(http.StatusOK, wf.Snapshot())
}
