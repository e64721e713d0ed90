package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the process-wide text logger. Pass debug=true in
// CLIs and tests to surface per-strategy extraction decisions.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
