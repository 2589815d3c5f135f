// Package logger configures the process-wide zerolog setup for PRISM.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the root logger. The level string follows zerolog's names
// (debug, info, warn, error, ...); anything unparseable falls back to info
// rather than silencing the process. Pretty switches to the human console
// writer for local runs.
func New(level string, pretty bool) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	root := zerolog.New(out).With().Timestamp().Caller().Logger()

	// Anything logging through the zerolog package-level logger (cron
	// adapters, panics) goes through the same root.
	log.Logger = root

	return root
}
