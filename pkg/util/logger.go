package util

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Console output is used
// unless LOG_JSON is set.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("LOG_JSON") == "" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
}

// LogError logs an error with context
func LogError(message string, err error) {
	if err != nil {
		zlog.Error().Err(err).Msg(message)
	}
}

// LogInfo logs an informational message
func LogInfo(message string) {
	zlog.Info().Msg(message)
}

// LogWarning logs a warning message
func LogWarning(message string) {
	zlog.Warn().Msg(message)
}
