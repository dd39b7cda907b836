package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	exec := New()

	out, err := exec.Execute(ctx, "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteIncludesStderr(t *testing.T) {
	ctx := context.Background()
	exec := New()

	_, err := exec.Execute(ctx, "sh", "-c", "echo boom 1>&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "stderr: boom") {
		t.Errorf("error %q does not include stderr", err.Error())
	}
}

func TestExecuteInDir(t *testing.T) {
	dir := t.TempDir()
	exec := New()

	if _, err := exec.ExecuteInDir(context.Background(), dir, "sh", "-c", "printf x > marker"); err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("marker not created in working dir: %v", err)
	}
}

func TestLookPath(t *testing.T) {
	exec := New()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Errorf("LookPath(sh) error = %v", err)
	}
	if _, err := exec.LookPath("definitely-not-a-real-tool-xyz"); err == nil {
		t.Error("LookPath() should fail for unknown tool")
	}
}

func TestTail(t *testing.T) {
	if got := tail("abc", 5); got != "abc" {
		t.Errorf("tail() = %q", got)
	}
	if got := tail("abcdef", 3); got != "...def" {
		t.Errorf("tail() = %q", got)
	}
}
