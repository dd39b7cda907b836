package fetcher

import (
	"fmt"

	"github.com/nguyentantai21042004/video-digest/internal/config"
)

// Strategy is one way of asking yt-dlp for audio.
type Strategy struct {
	Name   string
	Format string
	// ExtractAudio post-processes the download into AudioFormat.
	ExtractAudio bool
	AudioFormat  string
}

// DefaultStrategies is tried when the config does not list any.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "best-audio", Format: "bestaudio/best"},
		{Name: "preferred-container", Format: "bestaudio[ext=m4a]/bestaudio[ext=mp3]/bestaudio"},
		{Name: "low-video-extract", Format: "best[height<=480]", ExtractAudio: true, AudioFormat: "mp3"},
		{Name: "worst-video-extract", Format: "worst", ExtractAudio: true, AudioFormat: "mp3"},
	}
}

func strategiesFrom(cfgs []config.StrategyConfig) []Strategy {
	if len(cfgs) == 0 {
		return DefaultStrategies()
	}

	out := make([]Strategy, 0, len(cfgs))
	for i, c := range cfgs {
		s := Strategy{
			Name:         c.Name,
			Format:       c.Format,
			ExtractAudio: c.ExtractAudio,
			AudioFormat:  c.AudioFormat,
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("strategy-%d", i+1)
		}
		if s.ExtractAudio && s.AudioFormat == "" {
			s.AudioFormat = "mp3"
		}
		out = append(out, s)
	}
	return out
}
