// Package logger builds the zerolog logger shared by the binaries.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. format "json" emits one JSON object per
// line; anything else uses the human readable console writer. Unknown levels
// fall back to info.
func New(w io.Writer, level, format, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// NewStdout is New writing to standard output.
func NewStdout(level, format, service string) zerolog.Logger {
	return New(os.Stdout, level, format, service)
}
