package inbox

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/video-digest/internal/exporter"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
)

// Handle processes every URL in the job file, then archives the file.
// It returns an error when no URL in the job succeeded.
func (h *implHandler) Handle(ctx context.Context, jobPath string) error {
	urls, err := readJob(jobPath)
	if err != nil {
		return fmt.Errorf("read job %s: %w", jobPath, err)
	}

	job := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath))
	h.logger.Info(ctx, "Job %s: %d URL(s)", job, len(urls))

	succeeded, failed := 0, 0
	for i, source := range urls {
		// A shutdown leaves the job in the inbox for the next startup sweep.
		if err := ctx.Err(); err != nil {
			h.logger.Warn(ctx, "Job %s interrupted after %d of %d URL(s), leaving it in the inbox", job, i, len(urls))
			return err
		}

		name := job
		if len(urls) > 1 {
			name = fmt.Sprintf("%s-%d", job, i+1)
		}

		runCtx := logger.WithRequestID(ctx, uuid.NewString())
		if err := h.processOne(runCtx, name, source); err != nil {
			if ctx.Err() != nil {
				h.logger.Warn(ctx, "Job %s interrupted during %s, leaving it in the inbox", job, source)
				return ctx.Err()
			}
			h.logger.Error(runCtx, "[%d/%d] %s failed: %v", i+1, len(urls), source, err)
			failed++
			continue
		}
		succeeded++
	}

	if err := h.moveToArchived(ctx, jobPath); err != nil {
		h.logger.Warn(ctx, "Failed to archive job %s: %v", jobPath, err)
	}

	h.logger.Info(ctx, "Job %s complete: %d success, %d failed", job, succeeded, failed)
	if succeeded == 0 && len(urls) > 0 {
		return fmt.Errorf("job %s: all %d URL(s) failed", job, len(urls))
	}
	return nil
}

func (h *implHandler) processOne(ctx context.Context, name, source string) error {
	if err := models.ValidateSource(source); err != nil {
		h.writeFailure(ctx, name, source, err, nil)
		return err
	}

	result, err := h.processor.Process(ctx, processor.Request{
		URL:              source,
		IncludeFragments: true,
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		var fetchErr *models.FetchError
		var causes []string
		if errors.As(err, &fetchErr) {
			causes = fetchErr.Causes()
		}
		h.writeFailure(ctx, name, source, err, causes)
		return err
	}

	files, err := h.exporter.Export(ctx, exporter.Document{
		Name:      name,
		SourceURL: source,
		Title:     result.Title,
		Result:    result,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	h.logger.Info(ctx, "[DONE] %s -> %s", source, files.Summary)
	return nil
}

// readJob returns the URLs listed in a job file.
func readJob(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
