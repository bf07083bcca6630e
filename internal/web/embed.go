// Package web serves the embedded single page UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed dist/*
var staticFiles embed.FS

// GetFileSystem returns the embedded filesystem with the dist folder as root.
func GetFileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "dist")
}

// RegisterStaticRoutes registers the UI routes with Echo.
// The API routes should be registered before calling this function.
func RegisterStaticRoutes(e *echo.Echo) error {
	staticFS, err := GetFileSystem()
	if err != nil {
		return err
	}

	fileServer := http.FileServer(http.FS(staticFS))

	e.GET("/*", func(c echo.Context) error {
		requestPath := path.Clean(c.Request().URL.Path)
		name := strings.TrimPrefix(requestPath, "/")

		// Unknown API paths are real 404s, not the page
		if strings.HasPrefix(name, "api/") {
			return echo.ErrNotFound
		}

		if name == "" {
			return serveIndexHTML(c, staticFS)
		}

		stat, err := fs.Stat(staticFS, name)
		if err != nil || stat.IsDir() {
			return serveIndexHTML(c, staticFS)
		}

		fileServer.ServeHTTP(c.Response(), c.Request())
		return nil
	})

	return nil
}

// serveIndexHTML serves the main index.html
func serveIndexHTML(c echo.Context, staticFS fs.FS) error {
	content, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "index.html not found")
	}
	return c.HTMLBlob(http.StatusOK, content)
}

// HasEmbeddedFiles returns true if the UI has been embedded.
func HasEmbeddedFiles() bool {
	_, err := staticFiles.ReadFile("dist/index.html")
	return err == nil
}
