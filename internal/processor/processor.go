package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/video-digest/internal/metrics"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/workarea"
)

// Process runs one URL through the pipeline. The working area is removed on
// every exit path.
func (p *implProcessor) Process(ctx context.Context, req Request) (models.Result, error) {
	if !p.slots.tryAcquire() {
		p.logger.Info(ctx, "All %d pipeline slots busy, waiting: %s", p.slots.busy(), req.URL)
		if err := p.slots.acquire(ctx); err != nil {
			return models.Result{}, &models.PipelineError{
				Stage:   models.StageIdle,
				Message: "cancelled while waiting for a free pipeline slot",
				Err:     err,
			}
		}
	}
	defer p.slots.release()

	startTime := time.Now()
	t := newTracker(req.OnStage)

	metrics.PipelineStarted()
	outcome := "success"
	defer func() { metrics.PipelineFinished(outcome) }()

	fail := func(stage models.Stage, message string, err error) (models.Result, error) {
		outcome = string(stage) + "_failed"
		t.enter(models.StageFailed)
		p.logger.Error(ctx, "Pipeline failed during %s: %v", stage, err)
		return models.Result{}, &models.PipelineError{Stage: stage, Message: message, Err: err}
	}

	p.logger.Info(ctx, "Starting pipeline: %s", req.URL)

	// Step 1: Working area
	t.enter(models.StageSetup)
	area, err := workarea.New(p.tempDir)
	if err != nil {
		return fail(models.StageSetup, "failed to create working area", err)
	}
	defer func() {
		if err := area.Remove(); err != nil {
			p.logger.Warn(ctx, "Failed to cleanup working area: %v", err)
		}
	}()

	var advisories []string
	advise := func(msg string) {
		advisories = append(advisories, msg)
		if req.OnAdvisory != nil {
			req.OnAdvisory(msg)
		}
	}

	// Step 2: Fetch audio
	t.enter(models.StageFetching)
	artifact, err := p.fetcher.Fetch(ctx, req.URL, area, advise)
	if err != nil {
		return fail(models.StageFetching, err.Error(), err)
	}

	// Step 3: Make sure the engine can read it
	t.enter(models.StageNormalizing)
	artifact = p.normalizer.Normalize(ctx, artifact)

	// Step 4: Transcribe
	t.enter(models.StageTranscribing)
	transcription, err := p.transcriber.Transcribe(ctx, artifact)
	if err != nil {
		return fail(models.StageTranscribing, err.Error(), err)
	}

	// Step 5: Summarize
	t.enter(models.StageSummarizing)
	summary := p.summarizer.Summarize(ctx, transcription.Text, req.Credential)

	t.enter(models.StageDone)

	result := models.Result{
		Title:      artifact.SourceTitle,
		Transcript: transcription.Text,
		Summary:    summary,
		Metadata:   transcription.Metadata,
		Advisories: advisories,
	}
	if req.IncludeFragments {
		result.Fragments = transcription.Fragments
	}

	p.logger.Info(ctx, "Pipeline completed in %s: %d chars of transcript", time.Since(startTime).Round(time.Millisecond), len(result.Transcript))
	return result, nil
}

// tracker reports stage transitions and how long each stage took.
type tracker struct {
	onStage func(models.Stage)
	current models.Stage
	since   time.Time
}

func newTracker(onStage func(models.Stage)) *tracker {
	return &tracker{onStage: onStage, current: models.StageIdle, since: time.Now()}
}

func (t *tracker) enter(stage models.Stage) {
	if t.current != models.StageIdle {
		metrics.ObserveStage(string(t.current), time.Since(t.since))
	}
	t.current = stage
	t.since = time.Now()
	if t.onStage != nil {
		t.onStage(stage)
	}
}
