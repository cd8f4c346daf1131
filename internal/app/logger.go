package app

import (
	"io"
	"log/slog"

	"github.com/Otacon/emesene/internal/config"
)

// newLogger builds the App's isolated logger. The command line picks the
// initial level and format; a profile's settings block, when present,
// overrides either one. The process-global logger is left untouched so
// concurrent App instances keep their own output streams.
func newLogger(appConfig *Config, settings *config.Settings, outW io.Writer) *slog.Logger {
	levelStr, formatStr := appConfig.LogLevel, appConfig.LogFormat
	if settings != nil {
		if settings.LogLevel != "" {
			levelStr = settings.LogLevel
		}
		if settings.LogFormat != "" {
			formatStr = settings.LogFormat
		}
	}

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
