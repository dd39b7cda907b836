package api

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
	"github.com/nguyentantai21042004/video-digest/internal/summarizer"
	"github.com/nguyentantai21042004/video-digest/internal/transcriber"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

type implAPI struct {
	version        string
	allowedOrigins map[string]struct{}
	processTimeout time.Duration
	fragments      bool
	metricsEnabled bool
	ffmpegBinary   string
	ffmpegDir      string

	processor   processor.Processor
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	executor    executor.Executor
	limiter     *rate.Limiter
	logger      logger.Logger
}

// New creates the HTTP API. version is reported by /health.
func New(
	cfg *config.Config,
	version string,
	proc processor.Processor,
	tr transcriber.Transcriber,
	sum summarizer.Summarizer,
	exec executor.Executor,
	log logger.Logger,
) API {
	origins := make(map[string]struct{}, len(cfg.Server.AllowedOrigins))
	for _, o := range cfg.Server.AllowedOrigins {
		origins[o] = struct{}{}
	}

	return &implAPI{
		version:        version,
		allowedOrigins: origins,
		processTimeout: cfg.Server.ProcessTimeout,
		fragments:      cfg.Server.IncludeFragments,
		metricsEnabled: cfg.Metrics.Enabled,
		ffmpegBinary:   cfg.FFmpeg.BinaryName,
		ffmpegDir:      cfg.FFmpeg.LocalDir,
		processor:      proc,
		transcriber:    tr,
		summarizer:     sum,
		executor:       exec,
		limiter:        rate.NewLimiter(rate.Limit(cfg.Performance.RequestsPerSec), cfg.Performance.RequestBurst),
		logger:         log,
	}
}
