package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	api "github.com/deepgram/deepgram-go-sdk/v3/pkg/api/listen/v1/rest"
	interfaces "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/v3/pkg/client/listen"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// deepgramEngine uses Deepgram's pre-recorded REST API.
type deepgramEngine struct {
	cfg config.DeepgramConfig

	mu sync.Mutex
	dg *api.Client
}

func newDeepgramEngine(cfg config.DeepgramConfig) *deepgramEngine {
	return &deepgramEngine{cfg: cfg}
}

func (e *deepgramEngine) Name() string { return config.EngineDeepgram }

func (e *deepgramEngine) Accepts() models.FormatSet { return models.FetchableFormats }

func (e *deepgramEngine) Load(ctx context.Context) error {
	if strings.TrimSpace(e.cfg.APIKey) == "" {
		return errors.New("deepgram: api key is not configured")
	}
	e.restClient()
	return nil
}

func (e *deepgramEngine) Loaded() bool {
	return strings.TrimSpace(e.cfg.APIKey) != ""
}

func (e *deepgramEngine) restClient() *api.Client {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dg == nil {
		c := client.NewREST(e.cfg.APIKey, &interfaces.ClientOptions{})
		e.dg = api.New(c)
	}
	return e.dg
}

// Recognize sends the file and streams utterances from the response.
func (e *deepgramEngine) Recognize(ctx context.Context, artifact models.AudioArtifact) (*Recognition, error) {
	if !e.Loaded() {
		return nil, models.ErrEngineNotInitialized
	}

	options := &interfaces.PreRecordedTranscriptionOptions{
		Model:          e.cfg.Model,
		Punctuate:      true,
		SmartFormat:    true,
		Utterances:     true,
		DetectLanguage: true,
	}

	res, err := e.restClient().FromFile(ctx, artifact.Path, options)
	if err != nil {
		return nil, fmt.Errorf("deepgram: transcribe file: %w", err)
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("deepgram: encode response: %w", err)
	}
	fragments, meta, err := parseDeepgramResponse(raw)
	if err != nil {
		return nil, err
	}
	meta.Engine = e.Name()
	return FromFragments(fragments, meta), nil
}

// deepgramResponse mirrors the parts of the pre-recorded JSON we use.
type deepgramResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage   string   `json:"detected_language"`
			LanguageConfidence *float64 `json:"language_confidence"`
			Alternatives       []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Start      float64 `json:"start"`
			End        float64 `json:"end"`
			Transcript string  `json:"transcript"`
		} `json:"utterances"`
	} `json:"results"`
}

// parseDeepgramResponse prefers utterances and falls back to one fragment
// holding the first channel's transcript.
func parseDeepgramResponse(raw []byte) ([]models.Fragment, models.Metadata, error) {
	var res deepgramResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, models.Metadata{}, fmt.Errorf("deepgram: decode response: %w", err)
	}

	var meta models.Metadata
	if res.Metadata.Duration > 0 {
		meta.DurationSeconds = models.Float(res.Metadata.Duration)
	}

	var channelText string
	if len(res.Results.Channels) > 0 {
		ch := res.Results.Channels[0]
		meta.Language = ch.DetectedLanguage
		meta.Confidence = ch.LanguageConfidence
		if len(ch.Alternatives) > 0 {
			channelText = strings.TrimSpace(ch.Alternatives[0].Transcript)
		}
	}

	fragments := make([]models.Fragment, 0, len(res.Results.Utterances))
	for _, u := range res.Results.Utterances {
		fragments = append(fragments, models.Fragment{
			Start: u.Start,
			End:   u.End,
			Text:  strings.TrimSpace(u.Transcript),
		})
	}
	if len(fragments) == 0 && channelText != "" {
		fragments = append(fragments, models.Fragment{Start: 0, End: res.Metadata.Duration, Text: channelText})
	}
	return fragments, meta, nil
}
