package logger

import (
	"log/slog"
	"os"
)

// Log defaults to slog's default logger so packages can log before Init runs (tests included).
var Log = slog.Default()

func Init(release bool) {
	level := slog.LevelDebug
	if release {
		level = slog.LevelInfo
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler).With("service", "hosteria-web")
}
