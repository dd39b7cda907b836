package exporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// FormatSRT renders fragments as SubRip subtitles. Fragments without text
// are skipped and numbering stays contiguous.
func FormatSRT(fragments []models.Fragment) string {
	var b strings.Builder
	n := 0
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n, srtTimestamp(f.Start), srtTimestamp(f.End), text)
	}
	return b.String()
}

// srtTimestamp formats seconds as HH:MM:SS,mmm.
func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// clock formats seconds as H:MM:SS or M:SS.
func clock(seconds float64) string {
	total := int64(math.Round(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
