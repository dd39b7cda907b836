package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/metrics"
)

const (
	MsgNoTranscript  = "⚠️ No transcript text available to summarize."
	MsgNoCredential  = "⚠️ Gemini API key not configured for summarization. Provide a key in the request or set GEMINI_API_KEY."
	MsgEmptySummary  = "⚠️ Gemini returned an empty summary."
	msgErrorTemplate = "⚠️ Error generating summary with Gemini: %v"
)

const summaryPrompt = `You are a helpful assistant that summarizes video transcripts.
Please provide a clear, concise summary of the following transcript:

%s

Please organize your summary with:
1. Main topic/subject
2. Key points discussed
3. Important insights or conclusions

Summary:`

// Summarize builds the prompt and asks the generator once.
func (s *implSummarizer) Summarize(ctx context.Context, transcript, credential string) string {
	if strings.TrimSpace(transcript) == "" {
		metrics.Summary("no_transcript")
		return MsgNoTranscript
	}

	key := strings.TrimSpace(credential)
	if key == "" {
		key = s.defaultKey
	}
	if key == "" {
		metrics.Summary("no_credential")
		s.logger.Warn(ctx, "Skipping summary: no Gemini API key")
		return MsgNoCredential
	}

	s.logger.Info(ctx, "Generating summary with Gemini (%d chars of transcript)", len(transcript))

	text, err := s.gen.Generate(ctx, key, fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		metrics.Summary("error")
		s.logger.Error(ctx, "Summary generation failed: %v", err)
		return fmt.Sprintf(msgErrorTemplate, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		metrics.Summary("empty")
		return MsgEmptySummary
	}

	metrics.Summary("success")
	s.logger.Info(ctx, "Summary generated (%d chars)", len(text))
	return text
}

func (s *implSummarizer) CredentialConfigured() bool {
	return s.defaultKey != ""
}
