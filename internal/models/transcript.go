package models

import "strings"

// Fragment is one timed span of recognized speech.
type Fragment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Metadata describes a finished recognition. Nil pointers and an empty
// Language mean "unknown".
type Metadata struct {
	Language        string   `json:"language,omitempty"`
	Confidence      *float64 `json:"language_probability,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Engine          string   `json:"engine"`
	// Approximate marks metadata that was estimated rather than measured.
	Approximate bool `json:"approximate"`
}

// Transcription is the flattened output of the transcriber.
type Transcription struct {
	Text      string
	Fragments []Fragment
	Metadata  Metadata
}

// JoinFragments reduces fragments to a flat transcript: texts joined with
// single spaces, outer whitespace trimmed.
func JoinFragments(fragments []Fragment) string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
