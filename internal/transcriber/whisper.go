package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/pkg/executor"
)

// whisperFormats are read by whisper-cli without a separate conversion.
var whisperFormats = models.NewFormatSet(models.FormatWAV, models.FormatMP3, models.FormatFLAC, models.FormatOGG)

// whisperEngine runs the whisper.cpp command line tool.
type whisperEngine struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger

	stat     func(name string) (os.FileInfo, error)
	readDir  func(name string) ([]os.DirEntry, error)
	readFile func(name string) ([]byte, error)

	once    sync.Once
	loadErr error
	loaded  atomic.Bool
	binary  string
	model   string
}

func newWhisperEngine(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) *whisperEngine {
	return &whisperEngine{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		stat:     os.Stat,
		readDir:  os.ReadDir,
		readFile: os.ReadFile,
	}
}

func (e *whisperEngine) Name() string { return config.EngineWhisper }

func (e *whisperEngine) Accepts() models.FormatSet { return whisperFormats }

// Load resolves the binary and model once; later calls return the first
// result.
func (e *whisperEngine) Load(ctx context.Context) error {
	e.once.Do(func() {
		binary, err := e.executor.LookPath(e.cfg.BinaryPath)
		if err != nil {
			e.loadErr = fmt.Errorf("whisper binary %q not found: %w", e.cfg.BinaryPath, err)
			return
		}
		model, err := e.resolveModelPath(e.cfg.ModelPath)
		if err != nil {
			e.loadErr = err
			return
		}
		e.binary, e.model = binary, model
		e.loaded.Store(true)
		e.logger.Info(ctx, "Whisper model loaded: %s", model)
	})
	return e.loadErr
}

func (e *whisperEngine) Loaded() bool {
	return e.loaded.Load()
}

// Recognize writes whisper's JSON output next to the audio file and streams
// the segments from it.
func (e *whisperEngine) Recognize(ctx context.Context, artifact models.AudioArtifact) (*Recognition, error) {
	if !e.Loaded() {
		return nil, models.ErrEngineNotInitialized
	}

	outBase := strings.TrimSuffix(artifact.Path, filepath.Ext(artifact.Path)) + ".whisper"
	if _, err := e.executor.Execute(ctx, e.binary, e.buildArgs(artifact.Path, outBase)...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := e.readFile(outBase + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	fragments, language, err := parseWhisperJSON(data)
	if err != nil {
		return nil, err
	}

	meta := models.Metadata{Language: language, Engine: e.Name()}
	if n := len(fragments); n > 0 {
		meta.DurationSeconds = models.Float(fragments[n-1].End)
	}
	return FromFragments(fragments, meta), nil
}

// buildArgs returns whisper-cli args for JSON export.
// -oj writes <outBase>.json, -l auto lets whisper detect the language.
// -ml 0 and -mc 0 lift the segment length and context limits.
func (e *whisperEngine) buildArgs(audioPath, outBase string) []string {
	args := []string{
		"-m", e.model,
		"-f", audioPath,
		"-oj",
		"-of", outBase,
		"-t", strconv.Itoa(e.cfg.Threads),
		"-l", e.cfg.Language,
		"-ml", "0",
		"-mc", "0",
		"-bo", strconv.Itoa(e.cfg.BestOf),
	}
	if prompt := strings.TrimSpace(e.cfg.Prompt); prompt != "" {
		args = append(args, "--prompt", prompt)
	}
	return args
}

// resolveModelPath returns the model file, or the first .bin/.gguf file
// in name order when given a directory.
func (e *whisperEngine) resolveModelPath(rawPath string) (string, error) {
	modelPath := strings.TrimSpace(rawPath)
	if modelPath == "" {
		return "", errors.New("whisper model path is required")
	}

	info, err := e.stat(modelPath)
	if err != nil {
		return "", fmt.Errorf("cannot access model path: %s", modelPath)
	}
	if !info.IsDir() {
		return modelPath, nil
	}

	entries, err := e.readDir(modelPath)
	if err != nil {
		return "", fmt.Errorf("cannot read model directory: %s", modelPath)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".bin" || ext == ".gguf" {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no .bin or .gguf model files found in: %s", modelPath)
	}

	sort.Strings(names)
	return filepath.Join(modelPath, names[0]), nil
}

type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// parseWhisperJSON converts whisper-cli JSON (offsets in milliseconds) to
// fragments in seconds.
func parseWhisperJSON(data []byte) ([]models.Fragment, string, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, "", fmt.Errorf("parse whisper output: %w", err)
	}

	fragments := make([]models.Fragment, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		fragments = append(fragments, models.Fragment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return fragments, out.Result.Language, nil
}
