package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a stdout zerolog.Logger at the given level, falling back
// to info on an unparseable level string.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(lvl)
}

// WithComponent returns a child logger tagging every entry with the given
// component name, so a run mixing simulator/strategy/regime log lines stays
// greppable by subsystem.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
