// Package middleware provides the application logger and wrappers that run
// terminal commands with a command-scoped logger.
package middleware

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-petr/atm-ledger/pkg/configpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreateLogger returns the application logger.
//
// Logs are JSON on stderr at info level, or human readable at trace level with
// callers in the development environment.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	var (
		output   io.Writer = os.Stderr
		logLevel           = zerolog.InfoLevel // default to INFO
	)

	log := zerolog.New(output).
		Level(logLevel).
		With().
		Timestamp().
		Logger()

	if config.Environment == "development" {
		log = log.
			Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// CommandFunc is a single terminal command.
type CommandFunc func(ctx context.Context) error

// CommandLogger runs fn with a logger carrying a fresh command id in ctx and
// logs the outcome and latency of the command.
//
// The error returned by fn is passed through unchanged.
func CommandLogger(ctx context.Context, logger zerolog.Logger, command string, fn CommandFunc) error {
	start := time.Now()

	l := logger.With().
		Str("command_id", uuid.NewString()).
		Str("command", command).
		Logger()

	err := fn(l.WithContext(ctx))

	var logEvent *zerolog.Event
	if err != nil {
		logEvent = l.Warn().Err(err)
	} else {
		logEvent = l.Info()
	}

	logEvent.
		Str("latency", time.Since(start).String()).
		Msg("command finished")

	return err
}
