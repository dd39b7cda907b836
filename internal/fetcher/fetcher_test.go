package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/workarea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeYTDLP answers resolve calls with metadata and download calls by
// writing a file named after the -o template.
type fakeYTDLP struct {
	mu sync.Mutex

	resolveErr  map[string]error  // by format
	downloadExt map[string]string // by format; "" writes nothing
	emptyFile   map[string]bool
	duration    float64

	calls   [][]string
	runDirs []string // working directory of each ExecuteInDir call
}

func (f *fakeYTDLP) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	format := argAfter(args, "-f")
	if contains(args, "--dump-single-json") {
		if err := f.resolveErr[format]; err != nil {
			return "", err
		}
		return `{"id":"abc123","title":"Demo talk","duration":` + formatFloat(f.duration) + `}`, nil
	}

	ext := f.downloadExt[format]
	if ext == "" {
		return "", errors.New("ERROR: Requested format is not available")
	}
	out := argAfter(args, "-o")
	out = strings.ReplaceAll(out, "%(id)s", "abc123")
	out = strings.ReplaceAll(out, "%(ext)s", ext)
	data := []byte("audio")
	if f.emptyFile[format] {
		data = nil
	}
	return "", os.WriteFile(out, data, 0644)
}

func (f *fakeYTDLP) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.runDirs = append(f.runDirs, dir)
	f.mu.Unlock()
	return f.Execute(ctx, name, args...)
}

func (f *fakeYTDLP) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func contains(args []string, v string) bool {
	for _, a := range args {
		if a == v {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newTestFetcher(t *testing.T, exec *fakeYTDLP, mutate func(*config.Config)) Fetcher {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	if mutate != nil {
		mutate(&cfg)
	}
	return New(&cfg, exec, logger.Nop())
}

func newArea(t *testing.T) *workarea.Area {
	t.Helper()
	area, err := workarea.New(t.TempDir())
	require.NoError(t, err)
	return area
}

func TestFetchFirstStrategySucceeds(t *testing.T) {
	exec := &fakeYTDLP{
		downloadExt: map[string]string{"bestaudio/best": "m4a"},
		duration:    125,
	}
	f := newTestFetcher(t, exec, nil)
	area := newArea(t)

	artifact, err := f.Fetch(context.Background(), "https://example.com/v", area, nil)
	require.NoError(t, err)

	assert.Equal(t, models.FormatM4A, artifact.Format)
	assert.Equal(t, int64(5), artifact.Size)
	assert.Equal(t, "Demo talk", artifact.SourceTitle)
	assert.Equal(t, 125.0, artifact.SourceDuration)
	assert.True(t, strings.HasPrefix(artifact.Path, area.Dir()))
	assert.Len(t, exec.calls, 2)
	assert.Equal(t, []string{area.Dir()}, exec.runDirs, "download runs inside the working area")
}

func TestFetchFallsBackToLaterStrategy(t *testing.T) {
	exec := &fakeYTDLP{
		resolveErr: map[string]error{
			"bestaudio/best": errors.New("HTTP Error 403: Forbidden"),
		},
		downloadExt: map[string]string{
			"bestaudio[ext=m4a]/bestaudio[ext=mp3]/bestaudio": "",
			"best[height<=480]": "mp3",
		},
		duration: 60,
	}
	f := newTestFetcher(t, exec, nil)

	artifact, err := f.Fetch(context.Background(), "https://example.com/v", newArea(t), nil)
	require.NoError(t, err)
	assert.Equal(t, models.FormatMP3, artifact.Format)

	last := exec.calls[len(exec.calls)-1]
	assert.Contains(t, last, "-x")
	assert.Equal(t, "mp3", argAfter(last, "--audio-format"))
}

func TestFetchSkipsEmptyFiles(t *testing.T) {
	exec := &fakeYTDLP{
		downloadExt: map[string]string{
			"bestaudio/best": "webm",
			"bestaudio[ext=m4a]/bestaudio[ext=mp3]/bestaudio": "opus",
		},
		emptyFile: map[string]bool{"bestaudio/best": true},
	}
	f := newTestFetcher(t, exec, nil)

	artifact, err := f.Fetch(context.Background(), "https://example.com/v", newArea(t), nil)
	require.NoError(t, err)
	assert.Equal(t, models.FormatOpus, artifact.Format)
}

func TestFetchExhaustionRemovesArea(t *testing.T) {
	exec := &fakeYTDLP{
		resolveErr: map[string]error{
			"bestaudio/best": errors.New("Sign in to confirm your age"),
		},
	}
	f := newTestFetcher(t, exec, nil)
	area := newArea(t)

	_, err := f.Fetch(context.Background(), "https://example.com/v", area, nil)
	require.Error(t, err)

	var fetchErr *models.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, models.FetchErrorMessage, err.Error())
	assert.Len(t, fetchErr.Attempts, 4)
	assert.Equal(t, phaseResolve, fetchErr.Attempts[0].Phase)
	assert.Equal(t, phaseTransfer, fetchErr.Attempts[1].Phase)

	_, statErr := os.Stat(area.Dir())
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchLongVideoAdvisory(t *testing.T) {
	exec := &fakeYTDLP{
		downloadExt: map[string]string{"bestaudio/best": "m4a"},
		duration:    7260,
	}
	f := newTestFetcher(t, exec, nil)

	var notes []string
	_, err := f.Fetch(context.Background(), "https://example.com/v", newArea(t), func(msg string) {
		notes = append(notes, msg)
	})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Video is 121 minutes long. This may take a while to process.", notes[0])
}

func TestFetchPassesCookiesAndFFmpegLocation(t *testing.T) {
	exec := &fakeYTDLP{downloadExt: map[string]string{"bestaudio": "m4a"}}
	f := newTestFetcher(t, exec, func(c *config.Config) {
		c.Fetcher.CookiesFile = "/secrets/cookies.txt"
		c.FFmpeg.LocalDir = "/opt/ffmpeg/bin"
		c.Fetcher.Strategies = []config.StrategyConfig{{Name: "only", Format: "bestaudio"}}
	})

	_, err := f.Fetch(context.Background(), "https://example.com/v", newArea(t), nil)
	require.NoError(t, err)

	require.Len(t, exec.calls, 2)
	for _, call := range exec.calls {
		assert.Equal(t, "/secrets/cookies.txt", argAfter(call, "--cookies"))
		assert.Equal(t, youtubeExtractorArgs, argAfter(call, "--extractor-args"))
	}
	assert.Equal(t, "/opt/ffmpeg/bin", argAfter(exec.calls[1], "--ffmpeg-location"))
}

func TestFetchAnchorsRelativeToolPaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	exec := &fakeYTDLP{downloadExt: map[string]string{"bestaudio": "m4a"}}
	f := newTestFetcher(t, exec, func(c *config.Config) {
		c.Fetcher.CookiesFile = "cookies.txt"
		c.Fetcher.Strategies = []config.StrategyConfig{{Name: "only", Format: "bestaudio"}}
	})

	_, err = f.Fetch(context.Background(), "https://example.com/v", newArea(t), nil)
	require.NoError(t, err)

	require.Len(t, exec.calls, 2)
	assert.Equal(t, filepath.Join(wd, "cookies.txt"), argAfter(exec.calls[1], "--cookies"))
}

func TestStrategiesFrom(t *testing.T) {
	assert.Equal(t, DefaultStrategies(), strategiesFrom(nil))

	got := strategiesFrom([]config.StrategyConfig{
		{Format: "worst", ExtractAudio: true},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "strategy-1", got[0].Name)
	assert.Equal(t, "mp3", got[0].AudioFormat)
}
