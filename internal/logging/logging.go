// Package logging configures the zerolog loggers used by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scatterblend/pkg/blend"
)

// Setup points the global logger at a console writer on stderr, sets the
// level and hands the logger to the blend package.
func Setup(verbose bool) zerolog.Logger {
	return setup(os.Stderr, verbose)
}

func setup(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	blend.SetLogger(log.Logger)
	return log.Logger
}
