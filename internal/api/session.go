package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/workflow"
)

const (
	// SessionCookieName carries the session id in browsers.
	SessionCookieName = "pdfx_session"
	// SessionHeader carries the session id for non-browser clients and is
	// echoed on every response.
	SessionHeader = "X-Session-ID"
)

// resolveWorkflow returns the caller's workflow, starting a session and
// setting the cookie when the caller has none.
func resolveWorkflow(c echo.Context, sessions Sessions) *workflow.Workflow {
	id := c.Request().Header.Get(SessionHeader)
	if id == "" {
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			id = cookie.Value
		}
	}

	wf, created := sessions.GetOrStart(id)
	if created {
		c.SetCookie(&http.Cookie{
			Name:     SessionCookieName,
			Value:    wf.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Response().Header().Set(SessionHeader, wf.ID())
	return wf
}
