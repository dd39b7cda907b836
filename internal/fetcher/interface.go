package fetcher

import (
	"context"

	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/workarea"
)

// Fetcher retrieves the audio track of a video into a working area.
type Fetcher interface {
	// Fetch tries each strategy in order and returns the first usable audio
	// file. advise receives non-fatal notices for the caller and may be nil.
	// When every strategy fails the area is removed and a *models.FetchError
	// is returned.
	Fetch(ctx context.Context, source string, area *workarea.Area, advise func(string)) (models.AudioArtifact, error)
}
