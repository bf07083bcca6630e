// handlers_result.go - Workflow state and result handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// ResultHandlerImpl implements the ResultHandler interface
type ResultHandlerImpl struct {
	sessions Sessions
}

// NewResultHandler creates a new result handler instance
func NewResultHandler(sessions Sessions) ResultHandler {
	return &ResultHandlerImpl{sessions: sessions}
}

// HandleGetState returns the caller's workflow snapshot
func (h *ResultHandlerImpl) HandleGetState(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)
	return c.JSON(http.StatusOK, wf.Snapshot())
}

// HandleGetStateMsgpack returns the snapshot in MessagePack format
func (h *ResultHandlerImpl) HandleGetStateMsgpack(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	data, err := msgpack.Marshal(wf.Snapshot())
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}

// HandleGetRawResult returns the raw markdown for the clipboard
func (h *ResultHandlerImpl) HandleGetRawResult(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	result, ok := wf.Result()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(result.Markdown))
}

// HandleGetHTMLResult returns the rendered HTML fragment
func (h *ResultHandlerImpl) HandleGetHTMLResult(c echo.Context) error {
	wf := resolveWorkflow(c, h.sessions)

	result, ok := wf.Result()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.HTML(http.StatusOK, result.HTML)
}
