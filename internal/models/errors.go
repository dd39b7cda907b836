package models

import (
	"errors"
	"fmt"
)

// ErrEngineNotInitialized is returned when transcription is attempted
// before the speech-recognition engine was loaded.
var ErrEngineNotInitialized = errors.New("speech-recognition engine is not initialized")

// FetchErrorMessage is the fixed message of every FetchError.
const FetchErrorMessage = "all download strategies failed; the video may be region-restricted, age-restricted, private, or protected against downloading"

// StrategyAttempt records why one fetch strategy did not produce audio.
type StrategyAttempt struct {
	Strategy string `json:"strategy"`
	Phase    string `json:"phase"`
	Err      error  `json:"-"`
}

// FetchError means every configured fetch strategy was exhausted.
// Attempts keeps per-strategy causes for diagnostics; they are never part
// of the message.
type FetchError struct {
	Attempts []StrategyAttempt
}

func (e *FetchError) Error() string {
	return FetchErrorMessage
}

// Causes lists per-strategy failures as "strategy/phase: cause" strings.
func (e *FetchError) Causes() []string {
	out := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		cause := "no audio file produced"
		if a.Err != nil {
			cause = a.Err.Error()
		}
		out = append(out, fmt.Sprintf("%s/%s: %s", a.Strategy, a.Phase, cause))
	}
	return out
}

// TranscriptionError wraps a failure of the speech-recognition engine.
type TranscriptionError struct {
	Engine string
	Err    error
}

func (e *TranscriptionError) Error() string {
	if e.Engine == "" {
		return fmt.Sprintf("transcription failed: %v", e.Err)
	}
	return fmt.Sprintf("transcription failed (%s): %v", e.Engine, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// PipelineError is a stage-aware error surfaced by the orchestrator.
type PipelineError struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap exposes underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
