package pwsa

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pwsa-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSearch adds the source and destination of a search to the logger.
// The driver logs splits and sampled progress through the returned logger.
func (l *Logger) WithSearch(source, destination Vertex) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source, "destination", destination),
	}
}

// WithWorkers adds a workers field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogSearch logs a finished search.
func (l *Logger) LogSearch(ctx context.Context, stats Stats, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"duration", duration,
			"settled", stats.Settled,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search completed",
		"duration", duration,
		"settled", stats.Settled,
		"splits", stats.Splits,
		"parallel_forks", stats.ParallelForks,
		"skipped_units", stats.UnitsSkipped,
		"peak_memory", stats.PeakMemory,
	)
}
