package widening

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with widening-specific context.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID tags every record with the id of a calculator run.
func (l *Logger) WithRunID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// WithWorkers adds the worker pool size to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogRunStart logs the beginning of a run.
func (l *Logger) LogRunStart(ctx context.Context, mode string) {
	l.InfoContext(ctx, "widening run started",
		"mode", mode,
	)
}

// LogRunEnd logs the outcome of a run.
func (l *Logger) LogRunEnd(ctx context.Context, rounds int, found bool, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "widening run failed",
			"rounds", rounds,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "widening run completed",
		"rounds", rounds,
		"found", found,
		"elapsed", elapsed,
	)
}

// LogRound logs a finished refine/select round.
func (l *Logger) LogRound(ctx context.Context, round, generation, candidates, next int) {
	l.DebugContext(ctx, "round completed",
		"round", round,
		"generation", generation,
		"candidates", candidates,
		"next", next,
	)
}

// LogEmptyFrontier logs that a generation produced no candidates.
func (l *Logger) LogEmptyFrontier(ctx context.Context, round, generation int) {
	l.DebugContext(ctx, "frontier exhausted",
		"round", round,
		"generation", generation,
	)
}
