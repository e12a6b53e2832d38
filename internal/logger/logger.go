// Package logger provides verbose logging for deckwork.
// When verbose mode is enabled via the --verbose flag, structured debug
// records are written to the configured output (stderr by default) so
// users can follow polling, loading and rescans.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log               = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing and for the TUI,
// which cannot share the terminal with log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(w)
}

// Logger returns the structured logger, or a discarding one when
// verbose mode is off.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}

// Debug logs a message with key/value attributes if verbose mode is enabled.
func Debug(msg string, args ...any) {
	emit(slog.LevelDebug, msg, args...)
}

// Info logs an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	emit(slog.LevelInfo, msg, args...)
}

// Warn logs a warning if verbose mode is enabled.
func Warn(msg string, args ...any) {
	emit(slog.LevelWarn, msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func emit(level slog.Level, msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Log(context.Background(), level, msg, args...)
	}
}
