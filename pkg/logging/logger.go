// Package logging provides structured logging for racepatch using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Example usage:
//
//	logging.Info().Str("plugin", "Heights_of_Skyrim.esp").Msg("Loading plugin")
//
//	// Carry a logger with record context through a run
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithRecord(ctx, "race", "013746:Skyrim.esm")
//	logging.FromContext(ctx).Debug().Msg("Comparing heights")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used until the CLI has read its configuration, and by
// code that has no logger in its context.
var defaultLogger = NewLoggerFromConfig(EnvConfig())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Err starts an error level event carrying err, or an info level event
// when err is nil.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
