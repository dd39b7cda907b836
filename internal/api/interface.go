package api

import "net/http"

// API serves the HTTP surface of the pipeline.
type API interface {
	Handler() http.Handler
}

// ProcessRequest is the body of POST /process.
type ProcessRequest struct {
	URL        string `json:"url"`
	Credential string `json:"credential,omitempty"`

	// IncludeFragments falls back to server.include_fragments when absent.
	IncludeFragments *bool `json:"include_fragments,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status               string `json:"status"`
	ModelLoaded          bool   `json:"model_loaded"`
	CredentialConfigured bool   `json:"credential_configured"`
	TranscriptionEngine  string `json:"transcription_engine"`
	FFmpegAvailable      bool   `json:"ffmpeg_available"`
	Version              string `json:"version"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
