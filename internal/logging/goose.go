package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger adapts zerolog to goose's Logger interface.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLogger(logger zerolog.Logger) *GooseLogger {
	return &GooseLogger{logger: logger.With().Str("component", "migrate").Logger()}
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
