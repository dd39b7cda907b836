package executor

import "context"

// Executor runs the external tools the pipeline depends on (yt-dlp,
// ffmpeg, whisper-cli). Tests swap it for fakes that write the files a
// real tool would produce.
type Executor interface {
	// Execute returns stdout. A failing command's error carries the tail
	// of its stderr.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath resolves name on the tool search path.
	LookPath(name string) (string, error)
}
