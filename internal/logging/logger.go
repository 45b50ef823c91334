// Package logging configures the zerolog logger used by the ndtf tool.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// EnvLogLevel overrides the configured level.
	EnvLogLevel = "NDTF_LOG_LEVEL"
	// EnvLogNoColor disables console colors when set to a true value.
	EnvLogNoColor = "NDTF_LOG_NOCOLOR"
)

// Config describes the logger.
type Config struct {
	Level   zerolog.Level
	NoColor bool
	Out     io.Writer
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level: zerolog.InfoLevel,
		Out:   os.Stderr,
	}
}

// New builds a console logger. Environment overrides win over cfg.
func New(cfg Config) zerolog.Logger {
	applyEnvOverrides(&cfg)

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).Level(cfg.Level).With().Timestamp().Logger()
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogNoColor))) {
	case "1", "true", "yes":
		cfg.NoColor = true
	case "0", "false", "no":
		cfg.NoColor = false
	}
}

// ParseLevel resolves a level name. The second result is false for empty or
// unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
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
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
