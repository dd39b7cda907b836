package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// Transcriber turns an audio artifact into text with timed fragments.
type Transcriber interface {
	// Load prepares the engine. It is safe to call more than once.
	Load(ctx context.Context) error
	// Ready reports whether Load succeeded.
	Ready() bool
	// Engine returns the name of the active engine.
	Engine() string
	// Accepts lists the formats the engine reads without conversion.
	Accepts() models.FormatSet
	// Transcribe fails with *models.TranscriptionError.
	Transcribe(ctx context.Context, artifact models.AudioArtifact) (models.Transcription, error)
}

// Engine is one speech-recognition backend.
type Engine interface {
	Name() string
	Load(ctx context.Context) error
	Loaded() bool
	Accepts() models.FormatSet
	Recognize(ctx context.Context, artifact models.AudioArtifact) (*Recognition, error)
}
