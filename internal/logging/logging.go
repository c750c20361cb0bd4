// Package logging sets up the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New returns a text logger writing to stderr and, when path is set, appending to that file.
// The returned closer releases the file.
func New(stderr io.Writer, path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(stderr, nil)), io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return slog.New(slog.NewTextHandler(io.MultiWriter(stderr, f), nil)), f, nil
}

// Setup installs the logger from New as the slog default
func Setup(path string) (io.Closer, error) {
	logger, closer, err := New(os.Stderr, path)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
