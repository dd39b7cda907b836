package normalizer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// Normalize converts the artifact to 16kHz mono WAV when the engine cannot
// read its format.
func (n *implNormalizer) Normalize(ctx context.Context, artifact models.AudioArtifact) models.AudioArtifact {
	if n.accepted.Contains(artifact.Format) {
		return artifact
	}

	ffmpeg, err := n.locateFFmpeg()
	if err != nil {
		n.logger.Warn(ctx, "Cannot convert %s, ffmpeg not found: %v", artifact.Format, err)
		return artifact
	}

	out := strings.TrimSuffix(artifact.Path, filepath.Ext(artifact.Path)) + ".wav"
	n.logger.Info(ctx, "Converting %s to wav: %s", artifact.Format, filepath.Base(artifact.Path))

	if _, err := n.executor.Execute(ctx, ffmpeg, buildArgs(artifact.Path, out)...); err != nil {
		n.logger.Warn(ctx, "ffmpeg conversion failed, keeping %s: %v", artifact.Format, err)
		return artifact
	}

	info, err := n.stat(out)
	if err != nil || info.Size() == 0 {
		n.logger.Warn(ctx, "ffmpeg produced no output, keeping %s", artifact.Format)
		return artifact
	}

	converted := artifact
	converted.Path = out
	converted.Format = models.FormatWAV
	converted.Size = info.Size()
	return converted
}

// locateFFmpeg prefers the configured local directory over the search path.
func (n *implNormalizer) locateFFmpeg() (string, error) {
	if n.localDir != "" {
		candidate := filepath.Join(n.localDir, n.binaryName)
		if info, err := n.stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	path, err := n.executor.LookPath(n.binaryName)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", n.binaryName, err)
	}
	return path, nil
}

// buildArgs returns ffmpeg args for mono 16k PCM WAV output.
// -vn drops any video stream, -nostdin keeps ffmpeg from waiting on input.
func buildArgs(in, out string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		out,
	}
}
