// Package logging configures the process logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger based on the verbosity count. Output goes to
// stderr so reports on stdout stay machine-readable.
func Setup(verbosity int) zerolog.Logger {
	var level zerolog.Level

	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	case 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the given component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
