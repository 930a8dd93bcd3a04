package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"issuetracker/internal/config"
)

// New builds the process logger and installs it as the zerolog global.
// Timestamps are written under "ts" in the configured timezone.
func New(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	logger := NewWithWriter(out, cfg)
	log.Logger = logger
	return logger
}

// NewWithWriter is New without touching globals; tests use it to capture output.
func NewWithWriter(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	loc := Location(cfg.Timezone)

	zerolog.TimestampFieldName = "ts"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Location resolves a timezone name, falling back to UTC.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
