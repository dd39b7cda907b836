package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Fetcher       FetcherConfig       `yaml:"fetcher"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Deepgram      DeepgramConfig      `yaml:"deepgram"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             string        `yaml:"port"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	IncludeFragments bool          `yaml:"include_fragments"`
	ProcessTimeout   time.Duration `yaml:"process_timeout"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
}

// StrategyConfig is one fetch strategy as written in the config file.
type StrategyConfig struct {
	Name         string `yaml:"name"`
	Format       string `yaml:"format"`
	ExtractAudio bool   `yaml:"extract_audio"`
	AudioFormat  string `yaml:"audio_format"`
}

type FetcherConfig struct {
	BinaryPath         string           `yaml:"binary_path"`
	CookiesFile        string           `yaml:"cookies_file"`
	LongVideoThreshold time.Duration    `yaml:"long_video_threshold"`
	Strategies         []StrategyConfig `yaml:"strategies"`
}

type FFmpegConfig struct {
	BinaryName string `yaml:"binary_name"`
	// LocalDir is searched before the tool search path.
	LocalDir string `yaml:"local_dir"`
}

type TranscriptionConfig struct {
	Engine string `yaml:"engine"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`

	// BestOf is the number of candidates kept when sampling.
	BestOf int `yaml:"best_of"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// AssumedBitrate is bytes per second used to estimate duration.
	AssumedBitrate int           `yaml:"assumed_bitrate"`
	Timeout        time.Duration `yaml:"timeout"`
}

type DeepgramConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type GeminiConfig struct {
	APIKey          string  `yaml:"api_key"`
	BaseURL         string  `yaml:"base_url"`
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`

	// ThinkingBudget caps reasoning tokens, which count against
	// MaxOutputTokens on thinking models. 0 turns thinking off and a
	// negative value leaves the model default.
	ThinkingBudget int `yaml:"thinking_budget"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent  int     `yaml:"max_concurrent"`
	RequestsPerSec float64 `yaml:"requests_per_second"`
	RequestBurst   int     `yaml:"request_burst"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	EngineWhisper  = "whisper"
	EngineOpenAI   = "openai"
	EngineDeepgram = "deepgram"
)

// Default returns the settings whose zero value is meaningful, so they
// cannot be defaulted by Validate.
func Default() Config {
	return Config{
		Gemini:  GeminiConfig{Temperature: 0.3},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate checks required fields and fills defaults for optional ones.
func (c *Config) Validate() error {
	c.Transcription.Engine = strings.ToLower(strings.TrimSpace(c.Transcription.Engine))
	if c.Transcription.Engine == "" {
		c.Transcription.Engine = EngineWhisper
	}
	switch c.Transcription.Engine {
	case EngineWhisper, EngineOpenAI, EngineDeepgram:
	default:
		return fmt.Errorf("transcription.engine must be one of whisper, openai, deepgram (got %q)", c.Transcription.Engine)
	}

	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 0.5 {
		return fmt.Errorf("gemini.temperature must be within [0, 0.5]")
	}
	if c.Gemini.MaxOutputTokens < 0 {
		return fmt.Errorf("gemini.max_output_tokens must not be negative")
	}
	for i, s := range c.Fetcher.Strategies {
		if strings.TrimSpace(s.Format) == "" {
			return fmt.Errorf("fetcher.strategies[%d].format is required", i)
		}
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}
	if c.Server.AllowedOrigins == nil {
		c.Server.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		// A full pipeline run can take many minutes.
		c.Server.WriteTimeout = 30 * time.Minute
	}
	if c.Fetcher.BinaryPath == "" {
		c.Fetcher.BinaryPath = "yt-dlp"
	}
	if c.Fetcher.LongVideoThreshold == 0 {
		c.Fetcher.LongVideoThreshold = time.Hour
	}
	if c.FFmpeg.BinaryName == "" {
		c.FFmpeg.BinaryName = "ffmpeg"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.BestOf == 0 {
		c.Whisper.BestOf = 5
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.OpenAI.AssumedBitrate == 0 {
		c.OpenAI.AssumedBitrate = 32 * 1024
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 10 * time.Minute
	}
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = "nova-2"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 500
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.RequestsPerSec == 0 {
		c.Performance.RequestsPerSec = 1
	}
	if c.Performance.RequestBurst == 0 {
		c.Performance.RequestBurst = 5
	}

	return nil
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
