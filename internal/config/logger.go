package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. Logs go to w, never to stdout, so
// command output stays machine readable.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupLogger installs NewLogger as the slog default and returns it.
func SetupLogger(cfg Config, w io.Writer) *slog.Logger {
	logger := NewLogger(cfg, w)
	slog.SetDefault(logger)
	return logger
}
