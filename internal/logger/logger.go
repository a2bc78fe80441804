// Package logger exposes the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

var levelVar = new(slog.LevelVar)

// L is the shared JSON logger, writing to stderr so log lines never mix with
// anything the process emits on stdout. Its level is adjustable at runtime
// via SetLevel.
var L = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return L.With(args...)
}

// SetLevel configures the global log level (debug, info, warn, error).
// Unknown values default to info.
func SetLevel(lvl string) {
	switch strings.ToLower(lvl) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
}
