package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the application logger. Production environments get JSON
// output for log shipping; everything else gets human-readable text.
func New(lvl string, addSource bool, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(lvl),
		AddSource: addSource,
	}

	var handler slog.Handler
	if strings.ToLower(environment) == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("environment", environment),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
