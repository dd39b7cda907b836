package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "remote engine",
			config: Config{
				Transcription: TranscriptionConfig{Engine: "OpenAI"},
			},
			wantErr: false,
		},
		{
			name: "unknown engine",
			config: Config{
				Transcription: TranscriptionConfig{Engine: "vosk"},
			},
			wantErr: true,
		},
		{
			name: "temperature too high",
			config: Config{
				Gemini: GeminiConfig{Temperature: 0.9},
			},
			wantErr: true,
		},
		{
			name: "strategy without format",
			config: Config{
				Fetcher: FetcherConfig{Strategies: []StrategyConfig{{Name: "broken"}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Transcription.Engine != EngineWhisper {
		t.Errorf("Engine = %q, want whisper", cfg.Transcription.Engine)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxOutputTokens != 500 {
		t.Errorf("MaxOutputTokens = %d, want 500", cfg.Gemini.MaxOutputTokens)
	}
	if cfg.Gemini.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.Gemini.Temperature)
	}
	if cfg.Fetcher.LongVideoThreshold != time.Hour {
		t.Errorf("LongVideoThreshold = %v, want 1h", cfg.Fetcher.LongVideoThreshold)
	}
	if cfg.OpenAI.AssumedBitrate != 32*1024 {
		t.Errorf("AssumedBitrate = %d", cfg.OpenAI.AssumedBitrate)
	}
	if cfg.Whisper.BestOf != 5 {
		t.Errorf("Whisper.BestOf = %d, want 5", cfg.Whisper.BestOf)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Addr() != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "DEEPGRAM_API_KEY", "HOST", "PORT",
		"LOG_LEVEL", "TRANSCRIPTION_ENGINE", "WHISPER_MODEL_PATH", "FFMPEG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9100"
  process_timeout: 10m

fetcher:
  cookies_file: "cookies.txt"
  strategies:
    - name: only-audio
      format: bestaudio

whisper:
  model_path: "models/ggml-base.bin"
  language: "en"

gemini:
  api_key: "file-key"
  temperature: 0

paths:
  temp: "tmp/work"

logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("Port = %v, want 9100", cfg.Server.Port)
	}
	if cfg.Server.ProcessTimeout != 10*time.Minute {
		t.Errorf("ProcessTimeout = %v", cfg.Server.ProcessTimeout)
	}
	if len(cfg.Fetcher.Strategies) != 1 || cfg.Fetcher.Strategies[0].Format != "bestaudio" {
		t.Errorf("Strategies = %+v", cfg.Fetcher.Strategies)
	}
	if cfg.Whisper.ModelPath != "models/ggml-base.bin" {
		t.Errorf("ModelPath = %v", cfg.Whisper.ModelPath)
	}
	if cfg.Gemini.APIKey != "file-key" {
		t.Errorf("Gemini.APIKey = %v", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Temperature != 0 {
		t.Errorf("explicit temperature 0 should be kept, got %v", cfg.Gemini.Temperature)
	}
	if cfg.Paths.Temp != "tmp/work" {
		t.Errorf("Temp = %v", cfg.Paths.Temp)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "7000")
	t.Setenv("TRANSCRIPTION_ENGINE", "deepgram")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gemini:\n  api_key: file-key\nserver:\n  port: \"9100\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("Gemini.APIKey = %q, want env-key", cfg.Gemini.APIKey)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Port = %q, want 7000", cfg.Server.Port)
	}
	if cfg.Transcription.Engine != EngineDeepgram {
		t.Errorf("Engine = %q, want deepgram", cfg.Transcription.Engine)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Fetcher.BinaryPath != "yt-dlp" {
		t.Errorf("BinaryPath = %q", cfg.Fetcher.BinaryPath)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}
