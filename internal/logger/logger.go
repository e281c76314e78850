// ABOUTME: Debug log for the console written to a file in the config directory
// ABOUTME: Keeps log output off the terminal, which belongs to the TUI and command output

package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// FileName is the log file inside the config directory
const FileName = "debug.log"

// New opens <dir>/debug.log for appending and returns a logger writing to it.
// If dir is empty, logging is disabled and a no-op logger is returned.
func New(dir, level string) (zerolog.Logger, io.Closer, error) {
	if dir == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return zerolog.Nop(), io.NopCloser(nil), err
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), err
	}

	return NewWriter(f, level), f, nil
}

// NewWriter returns a logger writing JSON lines to w
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
