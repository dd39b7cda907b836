package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

type implTranscriber struct {
	engine Engine
	logger logger.Logger
}

// New creates a Transcriber backed by the engine named in the config.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	var engine Engine
	switch cfg.Transcription.Engine {
	case config.EngineWhisper:
		engine = newWhisperEngine(cfg.Whisper, exec, log)
	case config.EngineOpenAI:
		engine = newOpenAIEngine(cfg.OpenAI)
	case config.EngineDeepgram:
		engine = newDeepgramEngine(cfg.Deepgram)
	default:
		return nil, fmt.Errorf("unknown transcription engine %q", cfg.Transcription.Engine)
	}
	return NewWithEngine(engine, log), nil
}

// NewWithEngine wraps an already constructed engine.
func NewWithEngine(engine Engine, log logger.Logger) Transcriber {
	return &implTranscriber{
		engine: engine,
		logger: log,
	}
}
