package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// openAILanguage is reported because the plain json response carries no
// detected language.
const openAILanguage = "auto-detected"

// openAIEngine uploads audio to an OpenAI-compatible transcription endpoint.
type openAIEngine struct {
	cfg    config.OpenAIConfig
	client *http.Client
}

func newOpenAIEngine(cfg config.OpenAIConfig) *openAIEngine {
	return &openAIEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (e *openAIEngine) Name() string { return config.EngineOpenAI }

func (e *openAIEngine) Accepts() models.FormatSet { return models.FetchableFormats }

func (e *openAIEngine) Load(ctx context.Context) error {
	if !e.Loaded() {
		return errors.New("openai: api key is not configured")
	}
	return nil
}

func (e *openAIEngine) Loaded() bool {
	return strings.TrimSpace(e.cfg.APIKey) != ""
}

// Recognize returns a single fragment covering the estimated duration.
// Language, duration and confidence are approximations.
func (e *openAIEngine) Recognize(ctx context.Context, artifact models.AudioArtifact) (*Recognition, error) {
	if !e.Loaded() {
		return nil, models.ErrEngineNotInitialized
	}

	body, contentType, err := e.buildForm(artifact.Path)
	if err != nil {
		return nil, err
	}

	text, err := e.post(ctx, body, contentType)
	if err != nil {
		return nil, err
	}

	size := artifact.Size
	if size == 0 {
		if info, err := os.Stat(artifact.Path); err == nil {
			size = info.Size()
		}
	}
	duration := float64(size) / float64(e.cfg.AssumedBitrate)

	meta := models.Metadata{
		Language:        openAILanguage,
		DurationSeconds: models.Float(duration),
		Engine:          e.Name(),
		Approximate:     true,
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FromFragments(nil, meta), nil
	}
	return FromFragments([]models.Fragment{{Start: 0, End: duration, Text: text}}, meta), nil
}

func (e *openAIEngine) buildForm(path string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("openai: open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("model", e.cfg.Model); err != nil {
		return nil, "", fmt.Errorf("openai: write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return nil, "", fmt.Errorf("openai: write response_format field: %w", err)
	}

	filePart, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("openai: create file form field: %w", err)
	}
	if _, err := io.Copy(filePart, f); err != nil {
		return nil, "", fmt.Errorf("openai: write audio data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("openai: close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func (e *openAIEngine) post(ctx context.Context, body io.Reader, contentType string) (string, error) {
	url := strings.TrimRight(e.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("openai: build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeOpenAIError(resp)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("openai: decode transcription response: %w", err)
	}
	return out.Text, nil
}

func decodeOpenAIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("openai: API status %d and failed to read error body: %w", resp.StatusCode, err)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("openai: API error (status %d): %s", resp.StatusCode, envelope.Error.Message)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("openai: API status %d: %s", resp.StatusCode, text)
}
