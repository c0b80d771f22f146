package kclust

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/report"
)

const (
	// DefaultMaxIterations is the iteration budget per run.
	DefaultMaxIterations = 10
	// DefaultRuns is the number of independent runs.
	DefaultRuns = 5
)

// Rand is the random source used for seeding.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

type options struct {
	maxIterations    int
	runs             int
	metric           distance.Metric
	rng              Rand
	reporter         report.Reporter
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Clusterer behavior.
type Option func(*options)

// WithMaxIterations sets the maximum number of assignment/update passes per
// run. A run that reaches it without converging still completes normally.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithRuns sets the number of independent runs. Every run starts from fresh
// seeding.
func WithRuns(n int) Option {
	return func(o *options) {
		o.runs = n
	}
}

// WithMetric selects the distance metric used for seeding and assignment.
// The default is distance.MetricEuclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithRand injects the random source used for seeding.
// Runs are reproducible when the source is deterministic.
func WithRand(r Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed seeds a math/rand source with seed.
// Convenience wrapper for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithReporter configures the receiver of per-iteration statistics.
// Pass nil to disable reporting.
//
// Example printing to stdout:
//
//	c, _ := kclust.New(2, kclust.WithReporter(report.NewText(os.Stdout)))
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kclust.BasicMetricsCollector{}
//	c, _ := kclust.New(3, kclust.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, converged: %d\n", stats.RunCount, stats.ConvergedRuns)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kclust.NewJSONLogger(slog.LevelInfo)
//	c, _ := kclust.New(2, kclust.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		runs:             DefaultRuns,
		metric:           distance.MetricEuclidean,
		reporter:         report.Discard,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.reporter == nil {
		o.reporter = report.Discard
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
