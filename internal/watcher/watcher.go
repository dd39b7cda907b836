package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-digest/internal/logger"
)

// jobExtensions are the file types picked up from the inbox.
var jobExtensions = []string{".url", ".txt"}

type implWatcher struct {
	inputDir      string
	handler       JobHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup

	// settle gives writers time to finish before a new file is read.
	settle time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles job files already in the inbox, then monitors it for new
// ones until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Job file types: %s", strings.Join(jobExtensions, ", "))

	if err := w.sweep(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan existing jobs: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing jobs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isJobFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-job file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New job detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				continue
			}

			_ = w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// sweep dispatches job files that were dropped while nobody was watching.
func (w *implWatcher) sweep(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isJobFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w.logger.Info(ctx, "Pending job found: %s", name)
		if err := w.dispatch(ctx, filepath.Join(w.inputDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler in a goroutine once a slot is free. A file that
// is already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	w.mu.Lock()
	if _, busy := w.inFlight[filePath]; busy {
		w.mu.Unlock()
		return nil
	}
	w.inFlight[filePath] = struct{}{}
	w.mu.Unlock()

	// Acquire semaphore slot (blocks if max concurrent reached)
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		w.done(filePath)
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }() // Release semaphore
		defer w.done(filePath)

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

func (w *implWatcher) done(filePath string) {
	w.mu.Lock()
	delete(w.inFlight, filePath)
	w.mu.Unlock()
}

// isJobFile checks if the file has a job extension and is not hidden
func isJobFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(base))
	for _, candidate := range jobExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
