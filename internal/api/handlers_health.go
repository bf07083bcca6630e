// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version  string
	model    string
	sessions Sessions
	cache    CacheStats
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(version, model string, sessions Sessions, cache CacheStats) HealthHandler {
	return &HealthHandlerImpl{
		version:  version,
		model:    model,
		sessions: sessions,
		cache:    cache,
	}
}

// HandleHealth returns server health status, the configured model and
// live session and cache counts
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}
	if h.model != "" {
		body["model"] = h.model
	}
	if h.sessions != nil {
		body["sessions"] = h.sessions.Count()
	}
	if h.cache != nil {
		body["cacheEntries"] = h.cache.Len()
	}
	return c.JSON(http.StatusOK, body)
}
