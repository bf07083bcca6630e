// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pdf-extractor/backend/internal/intake"
	"github.com/pdf-extractor/backend/internal/storage"
	"github.com/pdf-extractor/backend/internal/workflow"
	"github.com/rs/zerolog/log"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store     storage.Store
	Sessions  Sessions
	Converter workflow.Converter
	Validator intake.Validator
	Cache     CacheStats
	Version   string
	Model     string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Files   FileHandler
	Convert ConvertHandler
	Result  ResultHandler
	Export  ExportHandler
	State   StateStreamHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Version, deps.Model, deps.Sessions, deps.Cache),
		Files:   NewFileHandler(deps.Store, deps.Sessions, deps.Validator),
		Convert: NewConvertHandler(deps.Sessions, deps.Converter),
		Result:  NewResultHandler(deps.Sessions),
		Export:  NewExportHandler(deps.Sessions),
		State:   NewWebSocketHandler(deps.Sessions),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// File selection
	apiGroup.POST("/files", handlers.Files.HandleSelectFile)
	apiGroup.POST("/files/base64", handlers.Files.HandleSelectFileBase64)
	apiGroup.DELETE("/files", handlers.Files.HandleClearFile)

	// Conversion
	apiGroup.POST("/convert", handlers.Convert.HandleConvert)

	// State and results
	apiGroup.GET("/state", handlers.Result.HandleGetState)
	apiGroup.GET("/state/msgpack", handlers.Result.HandleGetStateMsgpack)
	apiGroup.GET("/result/raw", handlers.Result.HandleGetRawResult)
	apiGroup.GET("/result/html", handlers.Result.HandleGetHTMLResult)

	// Export
	apiGroup.GET("/export/:format", handlers.Export.HandleExport)

	// WebSocket state feed
	apiGroup.GET("/ws/state", handlers.State.HandleStateStream)
}

// MiddlewareOptions carries the server settings the middleware stack reads
type MiddlewareOptions struct {
	RequestLogging   bool
	RequestTimeout   time.Duration
	EnableGzip       bool
	GzipLevel        int
	BodyLimit        string
	EnableCORS       bool
	AllowOrigins     []string
	ShowErrorDetails bool
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
	ShowErrorDetails = opts.ShowErrorDetails

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !opts.RequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || path == "/api/state"
		},
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Bytes("stack", stack).Msg("panic recovered")
			return err
		},
	}))

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      opts.RequestTimeout,
		Skipper:      isLongRunning,
		ErrorMessage: "Request timeout",
	}))

	// Compression middleware
	if opts.EnableGzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   opts.GzipLevel,
			Skipper: isLongRunning,
		}))
	}

	// Body limit middleware
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	// CORS configuration
	if opts.EnableCORS {
		origins := opts.AllowOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     origins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, SessionHeader},
			ExposeHeaders:    []string{SessionHeader, echo.HeaderContentDisposition},
			AllowCredentials: !containsWildcard(origins),
		}))
	}
}

// isLongRunning reports routes exempt from the request timeout and gzip:
// the conversion waits on the model and the state feed is a websocket.
func isLongRunning(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/api/convert" || strings.HasPrefix(path, "/api/ws")
}

// SplitOrigins parses the comma separated AllowOrigins setting
func SplitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
