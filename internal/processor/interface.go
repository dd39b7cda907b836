package processor

import (
	"context"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// Request is one pipeline invocation.
type Request struct {
	URL string
	// Credential is a per-request summarizer API key. It is never stored.
	Credential       string
	IncludeFragments bool

	// OnStage and OnAdvisory are optional progress callbacks.
	OnStage    func(stage models.Stage)
	OnAdvisory func(message string)
}

// Processor runs the fetch, normalize, transcribe, summarize pipeline.
type Processor interface {
	// Process fails with *models.PipelineError.
	Process(ctx context.Context, req Request) (models.Result, error)
}
