package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/b2b-transaction-platform/internal/config"
)

// NewLogger creates and configures a new slog.Logger.
// Development environments get a human-readable text handler, everything
// else logs JSON for ingestion by log collectors.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source code location to log output
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Application.Env == "development" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)

	logger.Info("logger initialized", "level", level, "env", cfg.Application.Env)

	return logger
}
