package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/models"
	"github.com/nguyentantai21042004/video-digest/internal/processor"
)

func (a *implAPI) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Video Digest API is running"})
}

func (a *implAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:               "healthy",
		ModelLoaded:          a.transcriber.Ready(),
		CredentialConfigured: a.summarizer.CredentialConfigured(),
		TranscriptionEngine:  a.transcriber.Engine(),
		FFmpegAvailable:      a.ffmpegAvailable(),
		Version:              a.version,
	})
}

func (a *implAPI) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProcessRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if err := models.ValidateSource(req.URL); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	includeFragments := a.fragments
	if req.IncludeFragments != nil {
		includeFragments = *req.IncludeFragments
	}

	if a.processTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.processTimeout)
		defer cancel()
	}

	a.logger.Info(ctx, "Processing request for %s", req.URL)

	result, err := a.processor.Process(ctx, processor.Request{
		URL:              req.URL,
		Credential:       req.Credential,
		IncludeFragments: includeFragments,
		OnStage: func(stage models.Stage) {
			a.logger.Debug(ctx, "Stage: %s", stage)
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, errorDetail(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// errorDetail returns the message shown to API clients.
func errorDetail(err error) string {
	var pe *models.PipelineError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return err.Error()
}

func (a *implAPI) ffmpegAvailable() bool {
	if a.ffmpegDir != "" {
		if info, err := os.Stat(filepath.Join(a.ffmpegDir, a.ffmpegBinary)); err == nil && !info.IsDir() {
			return true
		}
	}
	_, err := a.executor.LookPath(a.ffmpegBinary)
	return err == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
