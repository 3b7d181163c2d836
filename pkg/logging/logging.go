// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel selects the minimum level: debug, info, warn, error.
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogFormat selects the handler: text or json.
	EnvLogFormat = "LOG_FORMAT"
)

// SetDefaultStructuredLogger installs a JSON logger tagged with the module
// name and version. Level comes from LOG_LEVEL (default info).
func SetDefaultStructuredLogger(name, version string) {
	level := ParseLevel(os.Getenv(EnvLogLevel))
	logger := newLogger(os.Stderr, level, true).With(
		slog.String("module", name),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}

// SetDefaultLogger installs a logger for interactive CLI use.
// The debug flag forces debug level; otherwise LOG_LEVEL applies.
// JSON output is used when asJSON is set or LOG_FORMAT=json.
func SetDefaultLogger(debug, asJSON bool) {
	level := ParseLevel(os.Getenv(EnvLogLevel))
	if debug {
		level = slog.LevelDebug
	}
	if strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		asJSON = true
	}
	slog.SetDefault(newLogger(os.Stderr, level, asJSON))
}

func newLogger(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
