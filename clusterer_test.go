package kclust

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/model"
	"github.com/hupe1980/kclust/report"
	"github.com/hupe1980/kclust/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRecords() []*model.Record {
	return testutil.Records([][4]int{
		{1, 25, 40, 60},
		{2, 27, 42, 58},
		{3, 60, 90, 10},
		{4, 62, 95, 8},
	})
}

func TestNew_Errors(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidClusters)

	_, err = New(2, WithMaxIterations(0))
	assert.ErrorIs(t, err, ErrInvalidIterations)

	_, err = New(2, WithRuns(0))
	assert.ErrorIs(t, err, ErrInvalidRuns)

	_, err = New(2, WithMetric(distance.Metric(42)))
	var im *ErrInvalidMetric
	require.True(t, errors.As(err, &im))
	assert.Equal(t, "unknown(42)", im.Metric)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestRun_Scenario(t *testing.T) {
	rec := report.NewRecorder()
	metrics := &BasicMetricsCollector{}

	c, err := New(2,
		WithMaxIterations(5),
		WithRuns(3),
		WithSeed(42),
		WithReporter(rec),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	records := scenarioRecords()
	results, err := c.Run(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, results, 3)

	totalIterations := 0
	for i, res := range results {
		assert.Equal(t, i+1, res.Run)
		assert.NotEmpty(t, res.ID)
		assert.True(t, res.Converged)
		assert.LessOrEqual(t, res.Iterations, 3)
		totalIterations += res.Iterations

		require.Len(t, res.Clusters, 2)
		for _, cl := range res.Clusters {
			assert.InDelta(t, 50.0, cl.Percent, 1e-9)
			assert.Len(t, cl.Members, 2)
		}
		assert.ElementsMatch(t, [][]model.RecordID{{1, 2}, {3, 4}},
			[][]model.RecordID{res.Clusters[0].Members, res.Clusters[1].Members})
	}
	assert.NotEqual(t, results[0].ID, results[1].ID)

	runs := rec.Runs()
	require.Len(t, runs, 3)
	for i, run := range runs {
		require.NotNil(t, run.Summary)
		assert.Len(t, run.Iterations, results[i].Iterations)
		for j, it := range run.Iterations {
			assert.Equal(t, j+1, it.Iteration)
			assert.Equal(t, 4, it.Total)
			var sum float64
			for _, cs := range it.Clusters {
				sum += cs.Percent
			}
			assert.InDelta(t, 100.0, sum, 1e-9)
		}
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(3), stats.RunCount)
	assert.Equal(t, int64(3), stats.ConvergedRuns)
	assert.Equal(t, int64(0), stats.ExhaustedRuns)
	assert.Equal(t, int64(totalIterations), stats.IterationCount)
}

func TestRun_Reproducible(t *testing.T) {
	run := func() []RunResult {
		records := testutil.NewRNG(1).UniformRecords(150)
		c, err := New(4, WithSeed(99), WithRuns(2))
		require.NoError(t, err)
		results, err := c.Run(context.Background(), records)
		require.NoError(t, err)
		return results
	}

	a, b := run(), run()
	require.Len(t, a, 2)
	for i := range a {
		assert.Equal(t, a[i].Iterations, b[i].Iterations)
		assert.Equal(t, a[i].Clusters, b[i].Clusters)
		assert.Equal(t, a[i].Inertia, b[i].Inertia)
	}
}

func TestRun_SingleCluster(t *testing.T) {
	rec := report.NewRecorder()
	c, err := New(1, WithRuns(1), WithSeed(5), WithReporter(rec))
	require.NoError(t, err)

	results, err := c.Run(context.Background(), scenarioRecords())
	require.NoError(t, err)
	require.Len(t, results, 1)

	runs := rec.Runs()
	require.Len(t, runs, 1)
	first := runs[0].Iterations[0]
	require.Len(t, first.Clusters, 1)
	assert.Equal(t, 100.0, first.Clusters[0].Percent)

	assert.True(t, results[0].Converged)
	assert.Equal(t, model.Features{43, 66, 34}, results[0].Clusters[0].Centroid)
}

func TestRun_ExhaustedIsNotAnError(t *testing.T) {
	c, err := New(2, WithRuns(2), WithMaxIterations(1), WithRand(&testutil.FixedRand{Ints: []int{0}, Floats: []float64{0.9}}))
	require.NoError(t, err)

	results, err := c.Run(context.Background(), scenarioRecords())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Converged)
		assert.Equal(t, 1, res.Iterations)
	}
}

func TestRun_Errors(t *testing.T) {
	c, err := New(5)
	require.NoError(t, err)

	_, err = c.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = c.Run(context.Background(), scenarioRecords())
	assert.ErrorIs(t, err, ErrTooManyClusters)
	var tf *ErrTooFewRecords
	require.True(t, errors.As(err, &tf))
	assert.Equal(t, 5, tf.Clusters)
	assert.Equal(t, 4, tf.Records)
}

func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New(2, WithSeed(1))
	require.NoError(t, err)

	results, err := c.Run(ctx, scenarioRecords())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

type cancelOnIteration struct {
	report.Reporter
	cancel context.CancelFunc
}

func (r cancelOnIteration) IterationCompleted(report.IterationReport) { r.cancel() }

func TestRun_CancelledBetweenPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	metrics := &BasicMetricsCollector{}

	c, err := New(2,
		WithSeed(1),
		WithMaxIterations(10),
		WithMetricsCollector(metrics),
		WithReporter(cancelOnIteration{Reporter: report.Discard, cancel: cancel}),
	)
	require.NoError(t, err)

	results, err := c.Run(ctx, scenarioRecords())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)

	stats := metrics.GetStats()
	assert.EqualValues(t, 1, stats.IterationCount)
	assert.EqualValues(t, 0, stats.RunCount)
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(2, WithRuns(1), WithSeed(3), WithLogger(logger))
	require.NoError(t, err)
	_, err = c.Run(context.Background(), scenarioRecords())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "seeding completed")
	assert.Contains(t, out, "iteration completed")
	assert.Contains(t, out, "run converged")
	assert.Contains(t, out, "clusters=2")
}

func TestRunResult_Nearest(t *testing.T) {
	c, err := New(2, WithRuns(1), WithSeed(11))
	require.NoError(t, err)
	results, err := c.Run(context.Background(), scenarioRecords())
	require.NoError(t, err)

	res := results[0]
	young := res.Nearest(model.Features{26, 41, 59})
	old := res.Nearest(model.Features{61, 92, 9})
	assert.NotEqual(t, young, old)
	assert.NotEqual(t, model.NoCluster, young)

	assert.Equal(t, model.NoCluster, RunResult{}.Nearest(model.Features{}))
}

func TestBestRun(t *testing.T) {
	_, ok := BestRun(nil)
	assert.False(t, ok)

	best, ok := BestRun([]RunResult{
		{Run: 1, Inertia: 5},
		{Run: 2, Inertia: 3},
		{Run: 3, Inertia: 3},
	})
	require.True(t, ok)
	assert.Equal(t, 2, best.Run)
}
