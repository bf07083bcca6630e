package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pdf-extractor/backend/internal/api"
	"github.com/pdf-extractor/backend/internal/config"
	"github.com/pdf-extractor/backend/internal/convert"
	"github.com/pdf-extractor/backend/internal/intake"
	"github.com/pdf-extractor/backend/internal/llm"
	"github.com/pdf-extractor/backend/internal/render"
	"github.com/pdf-extractor/backend/internal/session"
	"github.com/pdf-extractor/backend/internal/storage"
	"github.com/pdf-extractor/backend/internal/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get executable path")
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "PDFExtractor.exe.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}
	if err := cfg.ApplyPromptProfile(); err != nil {
		log.Fatal().Err(err).Msg("failed to apply prompt profile")
	}
	setLogLevel(cfg.Advanced.LogLevel)

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatal().Err(err).Msg("failed to create directories")
	}

	// Check if running in embedded mode (frontend built into binary)
	embeddedMode := web.HasEmbeddedFiles()

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Model client; the API key is read at call time
	client, err := llm.New(cfg.Conversion.Provider, llm.Credentials{
		EnvVar:     cfg.Conversion.APIKeyEnv,
		DotEnvPath: cfg.GetDotEnvPath(),
	}, cfg.Conversion.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize model client")
	}

	cache, err := convert.NewResultCache(cfg.Conversion.CacheEntries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize result cache")
	}

	converter := convert.NewService(fileStore, client, render.NewRenderer(), convert.Options{
		Model:       cfg.Conversion.Model,
		Instruction: cfg.Conversion.Instruction,
		Cache:       cache,
	})

	// Initialize session manager
	sessionMgr := session.NewManager(fileStore)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessionMgr.CleanupOldSessions(time.Duration(cfg.Processing.SessionTimeoutMinutes) * time.Minute)
			}
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	origins := api.SplitOrigins(cfg.Server.AllowOrigins)
	if !embeddedMode {
		// Development mode - only allow the frontend dev servers
		origins = []string{
			"http://localhost:5173", "http://127.0.0.1:5173",
			"http://localhost:3000", "http://127.0.0.1:3000",
		}
	}

	api.SetupMiddleware(e, api.MiddlewareOptions{
		RequestLogging:   cfg.Advanced.EnableRequestLogging,
		RequestTimeout:   time.Duration(cfg.Server.ReadTimeout) * time.Second,
		EnableGzip:       cfg.Processing.EnableCompression,
		GzipLevel:        cfg.Processing.CompressionLevel,
		BodyLimit:        cfg.Server.BodyLimit,
		EnableCORS:       cfg.Server.EnableCORS,
		AllowOrigins:     origins,
		ShowErrorDetails: true,
	})

	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Store:     fileStore,
		Sessions:  sessionMgr,
		Converter: converter,
		Validator: intake.Validator{VerifySignature: cfg.Conversion.VerifySignature},
		Cache:     cache,
		Version:   Version,
		Model:     converter.Model(),
	}))

	// Register embedded frontend if available
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			log.Warn().Err(err).Msg("failed to register static routes")
		} else {
			log.Info().Msg("serving embedded frontend from binary")
		}
	}

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	mode := "Development"
	if embeddedMode {
		mode = "Air-Gapped (Embedded)"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           PDF Extractor Server                            ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Mode:       %-45s║\n", mode)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("║  Provider:  %-46s║\n", cfg.Conversion.Provider)
	fmt.Printf("║  Model:     %-46s║\n", converter.Model())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	go func() {
		if err := e.StartServer(s); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// setLogLevel applies Advanced.LogLevel, falling back to info.
func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
