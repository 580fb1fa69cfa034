package app

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger based on configuration.
func NewLogger(cfg *Config) *slog.Logger {
	return slog.New(newLogHandler(os.Stdout, cfg))
}

// newLogHandler picks the handler from LOG_FORMAT. Source locations are
// emitted outside production, where log volume makes them too expensive.
func newLogHandler(w io.Writer, cfg *Config) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: !cfg.IsProduction()}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
