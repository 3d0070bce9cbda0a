// Package logging configures the process-wide structured logger. Log lines are
// JSON records on stdout so they can be shipped without further parsing.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config captures logging configuration options.
type Config struct {
	Level string
}

// New builds a zerolog logger writing JSON to stdout at the configured level.
// Unknown level strings fall back to info.
func New(cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
