package summarizer

import "context"

// Summarizer produces a short natural-language summary of a transcript.
type Summarizer interface {
	// Summarize never fails. Problems are reported as a warning string in
	// place of the summary. credential overrides the configured API key
	// for this call only.
	Summarize(ctx context.Context, transcript, credential string) string
	// CredentialConfigured reports whether a default API key is set.
	CredentialConfigured() bool
}

// generator sends one prompt to a language model.
type generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}
