package kclust

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kclust-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRun adds the run number and run ID to the logger.
func (l *Logger) WithRun(run int, runID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run, "run_id", runID),
	}
}

// WithClusters adds a clusters (k) field to the logger.
func (l *Logger) WithClusters(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("clusters", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRunStarted logs the start of a run.
func (l *Logger) LogRunStarted(ctx context.Context, records int) {
	l.DebugContext(ctx, "run started",
		"records", records,
	)
}

// LogSeeded logs the outcome of centroid seeding.
func (l *Logger) LogSeeded(ctx context.Context, clusters int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"seeded", clusters,
		)
	}
}

// LogIteration logs a completed iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, phase string, duration time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"phase", phase,
		"duration", duration,
	)
}

// LogRunFinished logs the end of a run.
func (l *Logger) LogRunFinished(ctx context.Context, iterations int, converged bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "run failed",
			"iterations", iterations,
			"error", err,
		)
	case converged:
		l.InfoContext(ctx, "run converged",
			"iterations", iterations,
		)
	default:
		l.WarnContext(ctx, "run exhausted iteration budget",
			"iterations", iterations,
		)
	}
}

// LogIngest logs a record ingestion.
func (l *Logger) LogIngest(ctx context.Context, source string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingest failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "ingest completed",
			"source", source,
			"records", records,
		)
	}
}
