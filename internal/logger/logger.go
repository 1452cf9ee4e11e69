// Package logger holds the process-wide zerolog logger. Commands point it at
// stderr so event output on stdout stays machine readable.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is shared by every package. The zero value discards everything, which
// keeps library use and tests quiet until InitWithWriter runs.
var Log zerolog.Logger

// InitWithWriter points Log at out and filters entries below level. pretty
// switches to the console format for terminals.
func InitWithWriter(out io.Writer, level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(ParseLevel(level))

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	Log = zerolog.New(out).With().Timestamp().Caller().Logger()
}

// ParseLevel maps a configured level name onto zerolog. Names outside
// debug..error fall back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl < zerolog.DebugLevel || lvl > zerolog.ErrorLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
