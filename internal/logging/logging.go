package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on stderr. An unknown level falls back to
// info; verbose forces debug.
func New(level string, verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, level, verbose)
}

func NewWithWriter(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}
