package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/creatordir/internal/config"
)

// EnvLogLevel overrides the configured level for a single run.
const EnvLogLevel = "CREATORDIR_LOG_LEVEL"

// New opens the configured log file and returns a logger writing JSON lines
// to it. The returned closer releases the file.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, cfg.Level), f, nil
}

// NewWriter returns a timestamped logger on w at the configured level.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(Level(level)).With().Timestamp().Logger()
}

// NewConsole returns a human-readable logger for command line tools.
func NewConsole(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(Level(level)).With().Timestamp().Logger()
}

// Level resolves the effective level: the env override first, then raw,
// falling back to info.
func Level(raw string) zerolog.Level {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		return lvl
	}
	if lvl, ok := parseLevel(raw); ok {
		return lvl
	}
	return zerolog.InfoLevel
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "disabled", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
