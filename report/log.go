package report

import (
	"context"
	"log/slog"
)

// Log writes reports as structured log records.
type Log struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLog creates a Log reporter that emits every record at level.
func NewLog(logger *slog.Logger, level slog.Level) *Log {
	return &Log{logger: logger, level: level}
}

// RunStarted implements Reporter.
func (l *Log) RunStarted(run int) {
	l.logger.Log(context.Background(), l.level, "run started", "run", run)
}

// IterationCompleted implements Reporter.
func (l *Log) IterationCompleted(r IterationReport) {
	attrs := make([]any, 0, 3+len(r.Clusters))
	attrs = append(attrs, "run", r.Run, "iteration", r.Iteration, "total", r.Total)
	for _, c := range r.Clusters {
		attrs = append(attrs, slog.Group("cluster",
			"id", int(c.ID),
			"members", c.Members,
			"percent", c.Percent,
		))
	}
	l.logger.Log(context.Background(), l.level, "iteration completed", attrs...)
}

// RunFinished implements Reporter.
func (l *Log) RunFinished(s RunSummary) {
	l.logger.Log(context.Background(), l.level, "run finished",
		"run", s.Run,
		"run_id", s.RunID,
		"converged", s.Converged,
		"iterations", s.Iterations,
		"duration", s.Duration,
	)
}
