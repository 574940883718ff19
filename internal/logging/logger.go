package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the bootstrap logger. The DB-backed handler joins later in
// main, once the connection pool is up; until then records only go to stdout.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

// NewStdoutHandler returns the JSON stdout handler used both at bootstrap
// and inside the composite handler. Verbosity comes from LOG_LEVEL.
func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
