// Package browser locates a headless Chrome/Chromium binary for the
// audit engine, the report renderer, and the preview screenshotter.
package browser

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// ErrNotFound is returned when no Chrome/Chromium binary can be located.
var ErrNotFound = errors.New("chrome/chromium browser not found")

var commandNames = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
}

var knownPaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
}

// DefaultFlags are passed to every headless Chromium invocation.
var DefaultFlags = []string{
	"--headless",
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--disable-extensions",
}

var (
	findOnce  sync.Once
	foundPath string
	findErr   error
)

// Find returns the path to a Chrome/Chromium binary. The override, when
// non-empty, wins without any probing. Discovery results are cached for
// the process lifetime.
func Find(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	findOnce.Do(func() {
		for _, name := range commandNames {
			if path, err := exec.LookPath(name); err == nil {
				foundPath = path
				return
			}
		}
		for _, path := range knownPaths {
			if _, err := os.Stat(path); err == nil {
				foundPath = path
				return
			}
		}
		findErr = ErrNotFound
	})

	return foundPath, findErr
}
