package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envOverrides are process environment values that win over the file.
type envOverrides struct {
	GeminiAPIKey        string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`
	DeepgramAPIKey      string `envconfig:"DEEPGRAM_API_KEY"`
	Host                string `envconfig:"HOST"`
	Port                string `envconfig:"PORT"`
	LogLevel            string `envconfig:"LOG_LEVEL"`
	TranscriptionEngine string `envconfig:"TRANSCRIPTION_ENGINE"`
	WhisperModelPath    string `envconfig:"WHISPER_MODEL_PATH"`
	FFmpegDir           string `envconfig:"FFMPEG_DIR"`
}

// Load reads the yaml config at path (skipped when path is empty), loads a
// .env file if one exists, applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	override(&cfg.Gemini.APIKey, env.GeminiAPIKey)
	override(&cfg.OpenAI.APIKey, env.OpenAIAPIKey)
	override(&cfg.Deepgram.APIKey, env.DeepgramAPIKey)
	override(&cfg.Server.Host, env.Host)
	override(&cfg.Server.Port, env.Port)
	override(&cfg.Logging.Level, env.LogLevel)
	override(&cfg.Transcription.Engine, env.TranscriptionEngine)
	override(&cfg.Whisper.ModelPath, env.WhisperModelPath)
	override(&cfg.FFmpeg.LocalDir, env.FFmpegDir)
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
