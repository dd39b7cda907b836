package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-digest/internal/logger"
)

// settleDelay gives writers time to finish a job file before it is read.
const settleDelay = 500 * time.Millisecond

// New watches inboxDir and runs handler for each job file, at most
// maxConcurrent at a time.
func New(inboxDir string, handler JobHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create inbox watcher: %w", err)
	}
	if err := fsw.Add(inboxDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch inbox %s: %w", inboxDir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		inputDir:      inboxDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settle:        settleDelay,
		inFlight:      make(map[string]struct{}),
	}, nil
}
