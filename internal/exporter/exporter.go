package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export writes transcript, summary and subtitle files for doc. Docx and
// srt failures are logged and skipped; text files are required.
func (e *implExporter) Export(ctx context.Context, doc Document) (Files, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return Files{}, fmt.Errorf("create output dir: %w", err)
	}

	name := e.freeName(doc.Name)
	base := filepath.Join(e.outputDir, name)
	title := doc.Title
	if title == "" {
		title = doc.Name
	}

	var files Files

	files.Transcript = base + ".transcript.txt"
	if err := os.WriteFile(files.Transcript, []byte(doc.Result.Transcript+"\n"), 0644); err != nil {
		return Files{}, fmt.Errorf("write transcript: %w", err)
	}

	files.Summary = base + ".summary.md"
	if err := os.WriteFile(files.Summary, []byte(e.summaryMarkdown(title, doc)), 0644); err != nil {
		return Files{}, fmt.Errorf("write summary: %w", err)
	}

	files.SummaryDocx = base + ".summary.docx"
	if err := markdownToDocx(title, doc.Result.Summary, files.SummaryDocx); err != nil {
		e.logger.Warn(ctx, "Failed to write %s: %v", files.SummaryDocx, err)
		files.SummaryDocx = ""
	}

	if len(doc.Result.Fragments) > 0 {
		files.TranscriptDocx = base + ".transcript.docx"
		if err := fragmentsToDocx(title, doc.Result.Fragments, files.TranscriptDocx); err != nil {
			e.logger.Warn(ctx, "Failed to write %s: %v", files.TranscriptDocx, err)
			files.TranscriptDocx = ""
		}

		files.Subtitles = base + ".srt"
		if err := os.WriteFile(files.Subtitles, []byte(FormatSRT(doc.Result.Fragments)), 0644); err != nil {
			e.logger.Warn(ctx, "Failed to write %s: %v", files.Subtitles, err)
			files.Subtitles = ""
		}
	}

	e.logger.Info(ctx, "Exported %s -> %s", name, e.outputDir)
	return files, nil
}

// freeName returns name, or name with a timestamp suffix when an earlier
// run already exported under it.
func (e *implExporter) freeName(name string) string {
	if _, err := os.Stat(filepath.Join(e.outputDir, name+".summary.md")); err != nil {
		return name
	}
	return fmt.Sprintf("%s-%s", name, e.now().Format("20060102-150405"))
}

func (e *implExporter) summaryMarkdown(title string, doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "_%s_\n\n", e.now().Format("2006-01-02 15:04"))
	if doc.SourceURL != "" {
		fmt.Fprintf(&b, "Source: %s\n\n", doc.SourceURL)
	}

	meta := doc.Result.Metadata
	if meta.Language != "" {
		fmt.Fprintf(&b, "- Language: %s\n", meta.Language)
	}
	if meta.DurationSeconds != nil {
		fmt.Fprintf(&b, "- Duration: %s\n", clock(*meta.DurationSeconds))
	}
	if meta.Engine != "" {
		fmt.Fprintf(&b, "- Engine: %s\n", meta.Engine)
	}
	b.WriteString("\n")

	for _, a := range doc.Result.Advisories {
		fmt.Fprintf(&b, "> %s\n\n", a)
	}

	b.WriteString(strings.TrimSpace(doc.Result.Summary))
	b.WriteString("\n")
	return b.String()
}
