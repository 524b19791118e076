package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Provider  string
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("provider", event.Provider),
		slog.String("task", string(event.Task)),
		slog.String("model", event.Model),
		slog.Int64("latency_ms", event.LatencyMs),
		slog.Int("attempts", event.Attempts),
		slog.Bool("success", event.Success),
	}
	if !event.Success {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_code", event.ErrorCode))
	}
	o.logger.LogAttrs(context.Background(), level, "llm_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
