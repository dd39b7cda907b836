package normalizer

import (
	"context"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// Normalizer makes sure the transcription engine can read an artifact.
type Normalizer interface {
	// Normalize never fails: when conversion is impossible or goes wrong
	// the original artifact is returned unchanged.
	Normalize(ctx context.Context, artifact models.AudioArtifact) models.AudioArtifact
}
