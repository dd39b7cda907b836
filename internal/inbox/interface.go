package inbox

import "context"

// Handler processes one job file dropped into the inbox. A job file holds
// one URL per line; blank lines and lines starting with # are ignored.
type Handler interface {
	Handle(ctx context.Context, jobPath string) error
}
