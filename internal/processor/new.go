package processor

import (
	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/fetcher"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/normalizer"
	"github.com/nguyentantai21042004/video-digest/internal/summarizer"
	"github.com/nguyentantai21042004/video-digest/internal/transcriber"
)

type implProcessor struct {
	tempDir string

	fetcher     fetcher.Fetcher
	normalizer  normalizer.Normalizer
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer

	slots  *slots
	logger logger.Logger
}

// New creates a Processor. At most cfg.Performance.MaxConcurrent
// invocations run at once; the rest wait.
func New(
	cfg *config.Config,
	f fetcher.Fetcher,
	n normalizer.Normalizer,
	t transcriber.Transcriber,
	s summarizer.Summarizer,
	log logger.Logger,
) Processor {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implProcessor{
		tempDir:     cfg.Paths.Temp,
		fetcher:     f,
		normalizer:  n,
		transcriber: t,
		summarizer:  s,
		slots:       newSlots(maxConcurrent),
		logger:      log,
	}
}
