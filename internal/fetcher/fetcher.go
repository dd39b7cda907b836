package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/metrics"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/workarea"
)

const (
	phaseResolve  = "resolve"
	phaseTransfer = "transfer"
	phaseLocate   = "locate"

	// youtubeExtractorArgs skips pages and subtitle variants we never use.
	youtubeExtractorArgs = "youtube:player_skip=webpage;skip=translated_subs"
)

// probe is the subset of yt-dlp's info JSON we care about.
type probe struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Duration *float64 `json:"duration"`
}

// Fetch walks the strategy list until one of them leaves an audio file in
// the area.
func (f *implFetcher) Fetch(ctx context.Context, source string, area *workarea.Area, advise func(string)) (models.AudioArtifact, error) {
	attempts := make([]models.StrategyAttempt, 0, len(f.strategies))
	advised := false

	for i, s := range f.strategies {
		if err := ctx.Err(); err != nil {
			f.removeArea(ctx, area)
			return models.AudioArtifact{}, err
		}

		f.logger.Info(ctx, "Fetch strategy %d/%d (%s): %s", i+1, len(f.strategies), s.Name, s.Format)

		info, err := f.resolve(ctx, source, s)
		if err != nil {
			f.logger.Warn(ctx, "Strategy %s could not resolve %s: %v", s.Name, source, err)
			metrics.FetchAttempt(s.Name, "resolve_failed")
			attempts = append(attempts, models.StrategyAttempt{Strategy: s.Name, Phase: phaseResolve, Err: err})
			continue
		}

		if !advised && info.Duration != nil && *info.Duration > f.longVideo.Seconds() {
			msg := fmt.Sprintf("Video is %d minutes long. This may take a while to process.", int(*info.Duration)/60)
			f.logger.Warn(ctx, "%s", msg)
			if advise != nil {
				advise(msg)
			}
			advised = true
		}

		if err := f.transfer(ctx, source, s, area.Dir()); err != nil {
			f.logger.Warn(ctx, "Strategy %s download failed: %v", s.Name, err)
			metrics.FetchAttempt(s.Name, "transfer_failed")
			attempts = append(attempts, models.StrategyAttempt{Strategy: s.Name, Phase: phaseTransfer, Err: err})
			continue
		}

		artifact, ok, err := f.locate(area.Dir())
		if err != nil || !ok {
			f.logger.Warn(ctx, "Strategy %s produced no usable audio file", s.Name)
			metrics.FetchAttempt(s.Name, "no_audio")
			attempts = append(attempts, models.StrategyAttempt{Strategy: s.Name, Phase: phaseLocate, Err: err})
			continue
		}

		artifact.SourceTitle = info.Title
		if info.Duration != nil {
			artifact.SourceDuration = *info.Duration
		}

		metrics.FetchAttempt(s.Name, "success")
		f.logger.Info(ctx, "Fetched %s (%s, %d bytes) with strategy %s", filepath.Base(artifact.Path), artifact.Format, artifact.Size, s.Name)
		return artifact, nil
	}

	fetchErr := &models.FetchError{Attempts: attempts}
	for _, cause := range fetchErr.Causes() {
		f.logger.Debug(ctx, "Fetch attempt failed: %s", cause)
	}
	f.removeArea(ctx, area)
	return models.AudioArtifact{}, fetchErr
}

// resolve reads the video's metadata without downloading media.
func (f *implFetcher) resolve(ctx context.Context, source string, s Strategy) (probe, error) {
	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		"--no-playlist",
		"-f", s.Format,
	}
	args = append(args, f.commonArgs()...)
	args = append(args, source)

	out, err := f.executor.Execute(ctx, f.binary, args...)
	if err != nil {
		return probe{}, fmt.Errorf("yt-dlp resolve: %w", err)
	}

	var info probe
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &info); err != nil {
		return probe{}, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	return info, nil
}

// transfer downloads media for strategy s into dir.
func (f *implFetcher) transfer(ctx context.Context, source string, s Strategy, dir string) error {
	args := []string{
		"-f", s.Format,
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
		"--no-playlist",
		"--no-progress",
		"--quiet",
		"--no-warnings",
	}
	if s.ExtractAudio {
		args = append(args, "-x", "--audio-format", s.AudioFormat)
	}
	if f.ffmpegDir != "" {
		args = append(args, "--ffmpeg-location", f.ffmpegDir)
	}
	args = append(args, f.commonArgs()...)
	args = append(args, source)

	// Running inside the area keeps yt-dlp's .part and fragment files
	// under the same cleanup as the output.
	if _, err := f.executor.ExecuteInDir(ctx, dir, f.binary, args...); err != nil {
		return fmt.Errorf("yt-dlp download: %w", err)
	}
	return nil
}

func (f *implFetcher) commonArgs() []string {
	args := []string{"--extractor-args", youtubeExtractorArgs}
	if f.cookiesFile != "" {
		args = append(args, "--cookies", f.cookiesFile)
	}
	return args
}

// locate returns the first non-empty file in dir whose extension is on the
// fetch allow-list. Entries are visited in name order.
func (f *implFetcher) locate(dir string) (models.AudioArtifact, bool, error) {
	entries, err := f.readDir(dir)
	if err != nil {
		return models.AudioArtifact{}, false, fmt.Errorf("list working area: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format := models.FormatOf(e.Name())
		if !models.FetchableFormats.Contains(format) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		return models.AudioArtifact{
			Path:   filepath.Join(dir, e.Name()),
			Format: format,
			Size:   info.Size(),
		}, true, nil
	}
	return models.AudioArtifact{}, false, nil
}

func (f *implFetcher) removeArea(ctx context.Context, area *workarea.Area) {
	if err := area.Remove(); err != nil {
		f.logger.Warn(ctx, "Failed to remove working area: %v", err)
	}
}
