package inbox

import (
	"time"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/exporter"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
)

type implHandler struct {
	outputDir   string
	archivedDir string

	processor processor.Processor
	exporter  exporter.Exporter
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Handler that runs each URL through proc and exports the
// results.
func New(cfg *config.Config, proc processor.Processor, exp exporter.Exporter, log logger.Logger) Handler {
	return &implHandler{
		outputDir:   cfg.Paths.Output,
		archivedDir: cfg.Paths.Archived,
		processor:   proc,
		exporter:    exp,
		logger:      log,
		now:         time.Now,
	}
}
