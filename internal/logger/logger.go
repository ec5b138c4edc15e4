// Package logger provides a configured zerolog instance.
package logger

import (
	"os"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/rs/zerolog"
)

// NewLogger creates a new configured instance of zerolog.Logger with the
// level taken from the config and a service field attached.
func NewLogger(cfg *config.Config) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
		Timestamp().
		Str("service", "notify-relay").
		Caller().
		Logger().
		Level(level)

	return &logger, nil
}
