package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
)

// geminiGenerator builds a client per call so a request-scoped key never
// touches shared state.
type geminiGenerator struct {
	baseURL        string
	model          string
	maxTokens      int32
	temperature    float32
	thinkingBudget int32
	logger         logger.Logger
}

func newGeminiGenerator(cfg config.GeminiConfig, log logger.Logger) *geminiGenerator {
	return &geminiGenerator{
		baseURL:        cfg.BaseURL,
		model:          cfg.Model,
		maxTokens:      int32(cfg.MaxOutputTokens),
		temperature:    float32(cfg.Temperature),
		thinkingBudget: int32(cfg.ThinkingBudget),
		logger:         log,
	}
}

// Generate sends the prompt and concatenates the text parts of the first
// candidate. A truncated answer is returned as is.
func (g *geminiGenerator) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxTokens,
	}
	if g.thinkingBudget >= 0 {
		budget := g.thinkingBudget
		genConfig.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", nil
	}

	candidate := result.Candidates[0]
	// A candidate cut off before any text arrives has no content at all.
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		g.logger.Warn(ctx, "Gemini summary truncated at %d tokens", g.maxTokens)
	}
	if candidate.Content == nil {
		return "", nil
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
