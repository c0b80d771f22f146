package prometheus

import (
	"fmt"
	"io"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "kclust"

const (
	outcomeConverged = "converged"
	outcomeExhausted = "exhausted"
)

// Collector records iteration and run metrics as Prometheus series.
type Collector struct {
	iterations        prom.Counter
	iterationDuration prom.Histogram
	runs              *prom.CounterVec
	runIterations     prom.Histogram
	runDuration       prom.Histogram
}

// NewCollector creates a collector and registers its series with reg.
// An empty namespace selects DefaultNamespace.
func NewCollector(reg prom.Registerer, namespace string) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		iterations: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Total number of assign/update passes across all runs.",
		}),
		iterationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Latency of a single assign/update pass.",
			Buckets:   prom.ExponentialBuckets(0.00001, 4, 10),
		}),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of clustering runs by outcome.",
		}, []string{"outcome"}),
		runIterations: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_iterations",
			Help:      "Number of passes a run took before terminating.",
			Buckets:   prom.LinearBuckets(1, 1, 20),
		}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a clustering run including seeding.",
			Buckets:   prom.DefBuckets,
		}),
	}

	for _, col := range []prom.Collector{c.iterations, c.iterationDuration, c.runs, c.runIterations, c.runDuration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	// Pre-create both outcomes so they export as zero.
	c.runs.WithLabelValues(outcomeConverged)
	c.runs.WithLabelValues(outcomeExhausted)

	return c, nil
}

// RecordIteration records one completed pass.
func (c *Collector) RecordIteration(_ int, _ int, d time.Duration) {
	c.iterations.Inc()
	c.iterationDuration.Observe(d.Seconds())
}

// RecordRun records a finished run.
func (c *Collector) RecordRun(iterations int, converged bool, d time.Duration) {
	outcome := outcomeExhausted
	if converged {
		outcome = outcomeConverged
	}
	c.runs.WithLabelValues(outcome).Inc()
	c.runIterations.Observe(float64(iterations))
	c.runDuration.Observe(d.Seconds())
}

// WriteText gathers g and writes every metric family to w in the
// Prometheus text exposition format.
func WriteText(w io.Writer, g prom.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
