package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/exporter"
	"github.com/nguyentantai21042004/video-digest/internal/fetcher"
	"github.com/nguyentantai21042004/video-digest/internal/inbox"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/normalizer"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
	"github.com/nguyentantai21042004/video-digest/internal/summarizer"
	"github.com/nguyentantai21042004/video-digest/internal/transcriber"
	"github.com/nguyentantai21042004/video-digest/internal/watcher"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format == "console")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Digest Inbox")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()

	tr, err := transcriber.New(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}
	if err := tr.Load(ctx); err != nil {
		// Nothing can be transcribed without an engine.
		log.Error(ctx, "Failed to load speech-recognition engine: %v", err)
		os.Exit(1)
	}

	proc := processor.New(cfg,
		fetcher.New(cfg, exec, log),
		normalizer.New(cfg, tr.Accepts(), exec, log),
		tr,
		summarizer.New(cfg.Gemini, log),
		log,
	)
	handler := inbox.New(cfg, proc, exporter.New(cfg.Paths.Output, log), log)

	// Create watcher with the inbox handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, handler.Handle, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Inbox is ready!")
	log.Info(ctx, "Monitoring: %s (*.url, *.txt)", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Engine: %s", tr.Engine())
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Video Digest Inbox stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
