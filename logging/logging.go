// Package logging sets up the structured zerolog logger the driver and
// cmd packages use for progress reporting (spec §6 "Progress reporting"),
// the idiomatic-Go analogue of main.rs's eprintln! progress lines.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-formatted zerolog.Logger writing to w, at the
// given level. Pass os.Stderr for w to match the original's eprintln!
// destination.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// Default returns the standard stderr, info-level logger used by
// cmd/c4w and cmd/statecheck unless --verbose raises it to debug.
func Default(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return New(os.Stderr, level)
}
