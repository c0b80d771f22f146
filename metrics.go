package kclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus;
// see package metric/prometheus for a ready-made implementation.
type MetricsCollector interface {
	// RecordIteration is called after each assignment/update pass.
	RecordIteration(run, iteration int, duration time.Duration)

	// RecordRun is called after each run reaches a terminal phase.
	// iterations is the number of passes that ran.
	RecordRun(iterations int, converged bool, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	RunCount            atomic.Int64
	ConvergedRuns       atomic.Int64
	ExhaustedRuns       atomic.Int64
	RunTotalNanos       atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_, _ int, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ int, converged bool, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if converged {
		b.ConvergedRuns.Add(1)
	} else {
		b.ExhaustedRuns.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		RunCount:          b.RunCount.Load(),
		ConvergedRuns:     b.ConvergedRuns.Load(),
		ExhaustedRuns:     b.ExhaustedRuns.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IterationCount    int64
	IterationAvgNanos int64
	RunCount          int64
	ConvergedRuns     int64
	ExhaustedRuns     int64
	RunAvgNanos       int64
}
