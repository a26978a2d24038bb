package watch

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the logger used by `kiwic watch`: a human readable
// console writer when console is set (stdout is a terminal), JSON lines
// otherwise.
func NewLogger(out io.Writer, console bool, level zerolog.Level) zerolog.Logger {
	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a flag value to a zerolog level; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
