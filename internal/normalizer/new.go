package normalizer

import (
	"os"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

type implNormalizer struct {
	accepted   models.FormatSet
	binaryName string
	localDir   string

	executor executor.Executor
	logger   logger.Logger
	stat     func(name string) (os.FileInfo, error)
}

// New creates a Normalizer for an engine that reads the accepted formats.
func New(cfg *config.Config, accepted models.FormatSet, exec executor.Executor, log logger.Logger) Normalizer {
	return &implNormalizer{
		accepted:   accepted,
		binaryName: cfg.FFmpeg.BinaryName,
		localDir:   cfg.FFmpeg.LocalDir,
		executor:   exec,
		logger:     log,
		stat:       os.Stat,
	}
}
