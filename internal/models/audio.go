package models

import (
	"path/filepath"
	"strings"
)

// AudioFormat is a container format inferred from a file extension.
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatWebM AudioFormat = "webm"
	FormatOpus AudioFormat = "opus"
	FormatAAC  AudioFormat = "aac"
	FormatOGG  AudioFormat = "ogg"
	FormatFLAC AudioFormat = "flac"
)

// FormatSet is a set of audio formats.
type FormatSet map[AudioFormat]struct{}

// NewFormatSet builds a set from the given formats.
func NewFormatSet(formats ...AudioFormat) FormatSet {
	s := make(FormatSet, len(formats))
	for _, f := range formats {
		s[f] = struct{}{}
	}
	return s
}

// Contains reports whether f is in the set.
func (s FormatSet) Contains(f AudioFormat) bool {
	_, ok := s[f]
	return ok
}

// FetchableFormats is the allow-list of formats the fetcher returns.
var FetchableFormats = NewFormatSet(
	FormatWAV, FormatMP3, FormatM4A, FormatWebM,
	FormatOpus, FormatAAC, FormatOGG, FormatFLAC,
)

// FormatOf infers the format of path from its extension.
// The result is lowercased and may fall outside the known constants.
func FormatOf(path string) AudioFormat {
	return AudioFormat(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

// AudioArtifact is a fetched audio file that lives inside a working area.
type AudioArtifact struct {
	Path   string
	Format AudioFormat
	Size   int64

	SourceTitle    string
	SourceDuration float64
}
