package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/video-digest/internal/api"
	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/fetcher"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/normalizer"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
	"github.com/nguyentantai21042004/video-digest/internal/summarizer"
	"github.com/nguyentantai21042004/video-digest/internal/transcriber"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx := context.Background()

	configPath := flag.String("config", envOr("CONFIG_PATH", ""), "path to config.yaml (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format == "console")
	log.Info(ctx, "Video Digest API %s starting on %s", version, cfg.Addr())
	log.Info(ctx, "Transcription engine: %s", cfg.Transcription.Engine)

	exec := executor.New()

	tr, err := transcriber.New(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}
	// The service stays up without an engine; /health reports it and
	// /process fails at the transcribing stage.
	if err := tr.Load(ctx); err != nil {
		log.Warn(ctx, "Speech-recognition engine not loaded: %v", err)
	} else {
		log.Info(ctx, "Speech-recognition engine %s loaded", tr.Engine())
	}

	sum := summarizer.New(cfg.Gemini, log)
	if !sum.CredentialConfigured() {
		log.Warn(ctx, "No Gemini API key configured; requests must supply a credential")
	}

	proc := processor.New(cfg,
		fetcher.New(cfg, exec, log),
		normalizer.New(cfg, tr.Accepts(), exec, log),
		tr,
		sum,
		log,
	)

	handler := api.New(cfg, version, proc, tr, sum, exec, log).Handler()
	if cfg.Metrics.Enabled {
		log.Info(ctx, "Prometheus metrics enabled at /metrics")
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Server listening on http://%s (UI at /ui)", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info(ctx, "Shutting down server...")
	case err := <-errChan:
		log.Error(ctx, "Server failed: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Server exited gracefully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
