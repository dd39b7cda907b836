package exporter

import (
	"context"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// Document is one pipeline result with the context needed to render it.
type Document struct {
	// Name is the file stem, e.g. "lecture" or "lecture-2".
	Name      string
	SourceURL string
	Title     string
	Result    models.Result
}

// Files lists the paths written for one Document. Empty fields were skipped.
type Files struct {
	Transcript     string
	TranscriptDocx string
	Summary        string
	SummaryDocx    string
	Subtitles      string
}

// Exporter writes pipeline results to disk.
type Exporter interface {
	Export(ctx context.Context, doc Document) (Files, error)
}
