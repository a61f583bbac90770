package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-analyzer/internal/cache"
	"content-analyzer/internal/config"
	"content-analyzer/internal/http"
	"content-analyzer/internal/service"
	"content-analyzer/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API scores how relevant stored documents are to a topic phrase, word by word and paragraph by paragraph.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Content Analyzer API
//   description: |
//     Topic-relevance analysis for HTML, Markdown and plain-text documents.
//     Results are cached per document, mode, analysis kind and topic phrase.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	cacheRepo := storage.NewCacheRepo(db)

	cacheManager, err := cache.NewManager(cacheRepo,
		cache.WithRetention(cfg.Retention()),
		cache.WithMemory(cfg.CacheMemoryEntries),
	)
	if err != nil {
		log.Fatalf("Failed to create cache manager: %v", err)
	}
	slog.Info("Cache initialized", "retention", cfg.Retention().String(), "memory_entries", cfg.CacheMemoryEntries)

	analysisService, err := service.NewAnalysisService(documentRepo, cacheManager, service.AnalysisOptions{
		DefaultMode: cfg.AnalysisMode,
		Scoring:     cfg.ScoringOptions(),
	})
	if err != nil {
		log.Fatalf("Failed to create analysis service: %v", err)
	}
	documentService := service.NewDocumentService(documentRepo, cacheManager)
	slog.Info("Analysis service initialized",
		"default_mode", cfg.AnalysisMode,
		"hash_dimensions", cfg.HashDimensions,
		"workers", cfg.AnalysisWorkers,
	)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		AnalysisService: analysisService,
		DocumentService: documentService,
		DB:              db,
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	// Start API server
	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}
