package summarizer

import (
	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
)

type implSummarizer struct {
	defaultKey string
	gen        generator
	logger     logger.Logger
}

// New creates a Gemini backed Summarizer.
func New(cfg config.GeminiConfig, log logger.Logger) Summarizer {
	return newWithGenerator(cfg.APIKey, newGeminiGenerator(cfg, log), log)
}

func newWithGenerator(defaultKey string, gen generator, log logger.Logger) *implSummarizer {
	return &implSummarizer{
		defaultKey: defaultKey,
		gen:        gen,
		logger:     log,
	}
}
