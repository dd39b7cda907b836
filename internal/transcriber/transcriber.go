package transcriber

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

func (t *implTranscriber) Load(ctx context.Context) error {
	return t.engine.Load(ctx)
}

func (t *implTranscriber) Ready() bool {
	return t.engine.Loaded()
}

func (t *implTranscriber) Engine() string {
	return t.engine.Name()
}

func (t *implTranscriber) Accepts() models.FormatSet {
	return t.engine.Accepts()
}

// Transcribe drains the engine's recognition and flattens it.
func (t *implTranscriber) Transcribe(ctx context.Context, artifact models.AudioArtifact) (models.Transcription, error) {
	name := t.engine.Name()
	if !t.engine.Loaded() {
		return models.Transcription{}, &models.TranscriptionError{Engine: name, Err: models.ErrEngineNotInitialized}
	}

	start := time.Now()
	t.logger.Info(ctx, "Starting transcription with %s: %s", name, artifact.Path)

	rec, err := t.engine.Recognize(ctx, artifact)
	if err != nil {
		return models.Transcription{}, &models.TranscriptionError{Engine: name, Err: err}
	}

	var fragments []models.Fragment
	for rec.Next() {
		fragments = append(fragments, rec.Fragment())
	}
	if err := rec.Err(); err != nil {
		return models.Transcription{}, &models.TranscriptionError{Engine: name, Err: err}
	}

	meta, err := rec.Metadata()
	if err != nil {
		return models.Transcription{}, &models.TranscriptionError{Engine: name, Err: err}
	}
	if meta.Engine == "" {
		meta.Engine = name
	}

	t.logger.Info(ctx, "Transcription completed: %d fragments in %s", len(fragments), time.Since(start).Round(time.Millisecond))

	return models.Transcription{
		Text:      models.JoinFragments(fragments),
		Fragments: fragments,
		Metadata:  meta,
	}, nil
}
