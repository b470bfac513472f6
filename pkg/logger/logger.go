package logger

import (
	"log/slog"
	"os"
)

const envProduction = "production"

var defaultLogger *slog.Logger

// Init configures the process-wide logger. Production emits JSON at info
// level for log shipping; anything else emits text at debug for local work.
// Every line carries the service name so aggregated logs stay attributable.
func Init(env string) {
	var handler slog.Handler
	if env == envProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler).With("service", "camp-management")
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the process logger, initializing a development one
// if Init has not run yet.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
