// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Setup points the global logger at w
func Setup(w io.Writer, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(w).Level(level(debug)).With().Timestamp().Logger()
}

// SetupConsole logs human readable lines to stderr. Used by the non-interactive commands.
func SetupConsole(debug bool) {
	Setup(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, debug)
}

// SetupFile appends JSON events to path. The terminal belongs to the TUI
// while it runs, so nothing may be written to stdout or stderr.
func SetupFile(path string, debug bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Setup(f, debug)
	return f, nil
}

// Discard silences the global logger
func Discard() {
	log.Logger = zerolog.Nop()
}
