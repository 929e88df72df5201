// Package logging holds the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
)

// level controls the log level shared by every package. Default is Info,
// which suppresses the debug transitions logged by the interaction engine.
var level = new(slog.LevelVar)

// L is the shared logger.
var L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return level.Level() <= slog.LevelDebug
}

// For returns a logger tagged with a component name.
func For(component string) *slog.Logger {
	return L.With("component", component)
}
