// Package logging builds the zerolog loggers shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// New returns a timestamped logger writing to out. Pretty selects the
// human-readable console format used in dev; prod logs are JSON lines.
func New(out io.Writer, debug, pretty bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.DateTime,
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewStdout is New over a non-blocking ring buffer in front of stdout.
// The returned func flushes and closes the buffer.
func NewStdout(debug, pretty bool) (zerolog.Logger, func()) {
	wr := diode.NewWriter(os.Stdout, 1000, 10*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})
	return New(wr, debug, pretty), func() { _ = wr.Close() }
}
