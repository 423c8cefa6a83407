/*
Package logx wraps zerolog for the relay server.

It sets up the process-wide logger (console output while developing, JSON in
production) and offers small helpers for one-off log lines and for loggers
scoped to a single component such as the hub or a websocket client.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global zerolog logger.
// Development mode logs at debug level through a ConsoleWriter on stderr;
// otherwise JSON lines at info level are written to stdout.
func InitGlobalLogger(isDevelopment bool) {
	if isDevelopment {
		SetOutput(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}, zerolog.DebugLevel)
		return
	}

	SetOutput(os.Stdout, zerolog.InfoLevel)
}

// SetOutput replaces the global logger with one writing to w at the given level.
// Every entry carries a unix timestamp and its caller.
func SetOutput(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	log.Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// checkFields drops an odd-length key/value list so zerolog does not choke on it.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("logx call received an odd number of fields, ignoring them")
		return nil
	}
	return fields
}

// Debug logs msg at debug level with optional key/value pairs.
func Debug(msg string, fields ...any) {
	Logger().Debug().
		Fields(checkFields("Debug", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Info logs msg at info level with optional key/value pairs.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(checkFields("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn logs msg at warn level with optional key/value pairs.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(checkFields("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error logs err and msg at error level with optional key/value pairs.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(checkFields("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal logs at fatal level and exits the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(checkFields("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
