package watcher

import "context"

// Watcher dispatches job files dropped into the inbox directory.
type Watcher interface {
	// Start handles jobs already waiting, then blocks dispatching new ones
	// until ctx is done.
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler processes one job file. It owns moving the file out of the
// inbox.
type JobHandler func(ctx context.Context, jobPath string) error
