// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/workflow"
)

// FileHandler handles file intake
type FileHandler interface {
	HandleSelectFile(c echo.Context) error
	HandleSelectFileBase64(c echo.Context) error
	HandleClearFile(c echo.Context) error
}

// ConvertHandler handles the conversion request
type ConvertHandler interface {
	HandleConvert(c echo.Context) error
}

// ResultHandler exposes workflow state and conversion output
type ResultHandler interface {
	HandleGetState(c echo.Context) error
	HandleGetStateMsgpack(c echo.Context) error
	HandleGetRawResult(c echo.Context) error
	HandleGetHTMLResult(c echo.Context) error
}

// ExportHandler handles office document exports
type ExportHandler interface {
	HandleExport(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// StateStreamHandler pushes workflow snapshots over WebSocket
type StateStreamHandler interface {
	HandleStateStream(c echo.Context) error
}

// Sessions resolves the workflow owned by a browser session.
// This allows mocking in tests
type Sessions interface {
	GetOrStart(id string) (*workflow.Workflow, bool)
	TouchSession(id string) bool
	Count() int
}

// CacheStats reports the size of the conversion result cache
type CacheStats interface {
	Len() int
}
