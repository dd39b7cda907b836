// Package workarea manages the scratch directory owned by one pipeline run.
package workarea

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const pattern = "video-digest-*"

// Area is a uniquely named temporary directory. It is removed at most once
// no matter how many callers ask for removal.
type Area struct {
	dir string

	once sync.Once
	err  error
}

// New creates a fresh area below baseDir. baseDir is created if missing;
// an empty baseDir uses the system temp directory.
func New(baseDir string) (*Area, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0755); err != nil {
			return nil, fmt.Errorf("create temp base: %w", err)
		}
	}

	dir, err := os.MkdirTemp(baseDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create working area: %w", err)
	}
	// Tools may run with the area as their working directory.
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	return &Area{dir: dir}, nil
}

// Dir returns the absolute path of the area.
func (a *Area) Dir() string {
	return a.dir
}

// Remove deletes the area and everything in it. Only the first call does
// any work; later calls return the first call's result.
func (a *Area) Remove() error {
	a.once.Do(func() {
		if err := os.RemoveAll(a.dir); err != nil {
			a.err = fmt.Errorf("remove working area %s: %w", a.dir, err)
		}
	})
	return a.err
}
