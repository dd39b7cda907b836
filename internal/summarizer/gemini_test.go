package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-digest/internal/config"
	"github.com/nguyentantai21042004/video-digest/internal/logger"
)

// geminiServer answers every generateContent call with reply and keeps the
// last request.
type geminiServer struct {
	mu     sync.Mutex
	path   string
	apiKey string
	body   map[string]any
}

func newGeminiServer(t *testing.T, reply string) (*geminiServer, *httptest.Server) {
	t.Helper()
	gs := &geminiServer{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		gs.mu.Lock()
		gs.path = r.URL.Path
		gs.apiKey = r.Header.Get("x-goog-api-key")
		gs.body = body
		gs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return gs, srv
}

// findKey searches a decoded JSON document for key at any depth.
func findKey(v any, key string) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		if val, ok := x[key]; ok {
			return val, true
		}
		for _, child := range x {
			if val, ok := findKey(child, key); ok {
				return val, true
			}
		}
	case []any:
		for _, child := range x {
			if val, ok := findKey(child, key); ok {
				return val, true
			}
		}
	}
	return nil, false
}

func testGeminiConfig(baseURL string) config.GeminiConfig {
	return config.GeminiConfig{
		BaseURL:         baseURL,
		Model:           "gemini-2.5-flash",
		MaxOutputTokens: 500,
		Temperature:     0.3,
	}
}

func TestGeminiGenerate(t *testing.T) {
	gs, srv := newGeminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Main topic: "},{"text":"Go."}]},"finishReason":"STOP"}]}`)
	g := newGeminiGenerator(testGeminiConfig(srv.URL), logger.Nop())

	text, err := g.Generate(context.Background(), "request-key", "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "Main topic: Go.", text)

	gs.mu.Lock()
	defer gs.mu.Unlock()
	assert.True(t, strings.HasSuffix(gs.path, "gemini-2.5-flash:generateContent"), gs.path)
	assert.Equal(t, "request-key", gs.apiKey)

	budget, ok := findKey(gs.body, "thinkingBudget")
	require.True(t, ok, "thinking must be configured explicitly")
	assert.EqualValues(t, 0, budget)

	maxTokens, ok := findKey(gs.body, "maxOutputTokens")
	require.True(t, ok)
	assert.EqualValues(t, 500, maxTokens)
}

func TestGeminiGenerateDefaultThinking(t *testing.T) {
	gs, srv := newGeminiServer(t, `{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}]}`)
	cfg := testGeminiConfig(srv.URL)
	cfg.ThinkingBudget = -1
	g := newGeminiGenerator(cfg, logger.Nop())

	_, err := g.Generate(context.Background(), "k", "p")
	require.NoError(t, err)

	gs.mu.Lock()
	defer gs.mu.Unlock()
	_, ok := findKey(gs.body, "thinkingBudget")
	assert.False(t, ok)
}

func TestGeminiGenerateMaxTokensWithoutContent(t *testing.T) {
	_, srv := newGeminiServer(t, `{"candidates":[{"finishReason":"MAX_TOKENS"}]}`)
	var logs bytes.Buffer
	g := newGeminiGenerator(testGeminiConfig(srv.URL), logger.NewWithWriter(&logs, "debug"))

	text, err := g.Generate(context.Background(), "k", "p")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Contains(t, logs.String(), "truncated at 500 tokens")
}

func TestGeminiGenerateTruncatedText(t *testing.T) {
	_, srv := newGeminiServer(t, `{"candidates":[{"content":{"parts":[{"text":"partial"}]},"finishReason":"MAX_TOKENS"}]}`)
	var logs bytes.Buffer
	g := newGeminiGenerator(testGeminiConfig(srv.URL), logger.NewWithWriter(&logs, "debug"))

	text, err := g.Generate(context.Background(), "k", "p")
	require.NoError(t, err)
	assert.Equal(t, "partial", text)
	assert.Contains(t, logs.String(), "truncated")
}

func TestGeminiGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()
	g := newGeminiGenerator(testGeminiConfig(srv.URL), logger.Nop())

	_, err := g.Generate(context.Background(), "bad", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate content")
}

func TestSummarizeWithGeminiBackend(t *testing.T) {
	_, srv := newGeminiServer(t, `{"candidates":[{"content":{"parts":[{"text":"A short summary."}]},"finishReason":"STOP"}]}`)
	cfg := testGeminiConfig(srv.URL)
	cfg.APIKey = "default-key"

	s := New(cfg, logger.Nop())
	assert.Equal(t, "A short summary.", s.Summarize(context.Background(), "some transcript", ""))
}
