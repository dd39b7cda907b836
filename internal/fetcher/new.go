package fetcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

type implFetcher struct {
	binary      string
	cookiesFile string
	ffmpegDir   string
	longVideo   time.Duration
	strategies  []Strategy

	executor executor.Executor
	logger   logger.Logger
	readDir  func(name string) ([]os.DirEntry, error)
}

// New creates a yt-dlp backed Fetcher.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		binary:      cfg.Fetcher.BinaryPath,
		cookiesFile: absPath(cfg.Fetcher.CookiesFile),
		ffmpegDir:   absPath(cfg.FFmpeg.LocalDir),
		longVideo:   cfg.Fetcher.LongVideoThreshold,
		strategies:  strategiesFrom(cfg.Fetcher.Strategies),
		executor:    exec,
		logger:      log,
		readDir:     os.ReadDir,
	}
}

// absPath anchors a configured path to the current directory, since yt-dlp
// downloads run inside the working area.
func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
