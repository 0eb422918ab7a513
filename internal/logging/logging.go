// Package logging wraps zerolog for application logging.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contextKey is the type for context keys
type contextKey string

// RequestIDKey is the context key for request IDs
const RequestIDKey contextKey = "request_id"

// Logger wraps a configured zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

// Config holds logging configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a new logger with the given configuration
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "text" {
		// Pretty console output for development
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		// JSON output for production
		logger = zerolog.New(output).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return &Logger{logger: logger}
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	log.Logger = logger.logger
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(err error, msg string) {
	l.logger.Fatal().Err(err).Msg(msg)
}

// WithContext returns a logger carrying the request ID from ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.logger.With()

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		logger = logger.Str("request_id", requestID)
	}

	contextLogger := logger.Logger()
	return &contextLogger
}

// WithContext returns a logger with context values from the global logger
func WithContext(ctx context.Context) *zerolog.Logger {
	logger := log.With()

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		logger = logger.Str("request_id", requestID)
	}

	contextLogger := logger.Logger()
	return &contextLogger
}
