// Package logging builds the structured debug logger shared by the board,
// the store and the edit log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultDebugPath is where debug logs go when no path is configured.
const DefaultDebugPath = "classboard-debug.log"

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a JSON logger writing debug-level records to path when
// enabled, or a discarding logger otherwise. The returned close function
// must be called once the logger is no longer used.
func New(enabled bool, path string) (*slog.Logger, func() error, error) {
	if !enabled {
		return Discard(), func() error { return nil }, nil
	}
	if path == "" {
		path = DefaultDebugPath
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}
	logger := NewWriter(f)
	logger.Debug("debug log started", "log_file", path)
	return logger, f.Close, nil
}

// NewWriter returns a debug-level JSON logger writing to w.
func NewWriter(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
