package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// moveToArchived moves a handled job file into the archived folder. An
// existing file of the same name is kept and the new one gets a timestamp.
func (h *implHandler) moveToArchived(ctx context.Context, jobPath string) error {
	if err := os.MkdirAll(h.archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(jobPath)
	destPath := filepath.Join(h.archivedDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		stem := strings.TrimSuffix(filename, ext)
		destPath = filepath.Join(h.archivedDir, fmt.Sprintf("%s-%s%s", stem, h.now().Format("20060102-150405"), ext))
	}

	h.logger.Info(ctx, "Moving job to archived folder: %s -> %s", jobPath, destPath)

	if err := os.Rename(jobPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// writeFailure leaves a note next to the outputs explaining why a URL failed.
func (h *implHandler) writeFailure(ctx context.Context, name, source string, err error, causes []string) {
	var b strings.Builder
	fmt.Fprintf(&b, "url: %s\nerror: %v\n", source, err)
	for _, c := range causes {
		fmt.Fprintf(&b, "  - %s\n", c)
	}

	path := filepath.Join(h.outputDir, name+".error.txt")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(h.outputDir, fmt.Sprintf("%s-%s.error.txt", name, h.now().Format("20060102-150405")))
	}
	if err := os.MkdirAll(h.outputDir, 0755); err != nil {
		h.logger.Warn(ctx, "Failed to create output dir: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		h.logger.Warn(ctx, "Failed to write %s: %v", path, err)
	}
}
