package kclust

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/internal/kmeans"
	"github.com/hupe1980/kclust/model"
	"github.com/hupe1980/kclust/report"
)

// Cluster is the final state of one cluster at the end of a run.
type Cluster struct {
	ID       model.ClusterID
	Centroid model.Features
	// Members lists the IDs of the assigned records in input order.
	Members []model.RecordID
	// Percent is len(Members) / total records * 100.
	Percent float64
}

// RunResult is the outcome of a single run.
type RunResult struct {
	// Run is the 1-based run number.
	Run int
	// ID uniquely identifies the run in logs and reports.
	ID string
	// Converged is false when the iteration budget ran out first.
	Converged  bool
	Iterations int
	Duration   time.Duration
	Clusters   []Cluster
	// Inertia is the sum of distances from every record to the centroid of
	// the cluster it was last assigned to.
	Inertia float64

	dist distance.Func
}

// Nearest returns the cluster whose final centroid is closest to f.
// Ties go to the lower cluster ID. It returns model.NoCluster for an empty result.
func (r RunResult) Nearest(f model.Features) model.ClusterID {
	clusters := make([]kmeans.Cluster, len(r.Clusters))
	for i, c := range r.Clusters {
		clusters[i] = kmeans.Cluster{ID: c.ID, Centroid: c.Centroid}
	}
	dist := r.dist
	if dist == nil {
		dist = distance.Euclidean
	}
	idx, _ := kmeans.Nearest(f, clusters, dist)
	if idx < 0 {
		return model.NoCluster
	}
	return clusters[idx].ID
}

// BestRun returns the result with the lowest inertia.
// Earlier runs win ties. ok is false when results is empty.
func BestRun(results []RunResult) (best RunResult, ok bool) {
	for i, r := range results {
		if i == 0 || r.Inertia < best.Inertia {
			best = r
		}
	}
	return best, len(results) > 0
}

// Clusterer partitions records into a fixed number of clusters.
//
// A Clusterer is not safe for concurrent use: runs share the injected random
// source and the records' assignment fields.
type Clusterer struct {
	clusters      int
	maxIterations int
	runs          int
	dist          distance.Func
	rng           Rand
	reporter      report.Reporter
	metrics       MetricsCollector
	logger        *Logger
}

// New creates a Clusterer producing k clusters per run.
func New(k int, optFns ...Option) (*Clusterer, error) {
	if k < 1 {
		return nil, ErrInvalidClusters
	}

	opts := applyOptions(optFns)
	if opts.maxIterations < 1 {
		return nil, ErrInvalidIterations
	}
	if opts.runs < 1 {
		return nil, ErrInvalidRuns
	}

	dist, err := distance.Provider(opts.metric)
	if err != nil {
		return nil, &ErrInvalidMetric{Metric: opts.metric.String(), cause: err}
	}

	return &Clusterer{
		clusters:      k,
		maxIterations: opts.maxIterations,
		runs:          opts.runs,
		dist:          dist,
		rng:           opts.rng,
		reporter:      opts.reporter,
		metrics:       opts.metricsCollector,
		logger:        opts.logger.WithClusters(k),
	}, nil
}

// Run executes the configured number of independent runs over records and
// returns one result per run, in order.
//
// Records are read-only except for their Cluster field, which holds the
// assignment of the last pass of the last run when Run returns.
// Cancellation is checked between passes; on cancellation the results of
// completed runs are returned together with ctx.Err().
func (c *Clusterer) Run(ctx context.Context, records []*model.Record) ([]RunResult, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if c.clusters > len(records) {
		return nil, &ErrTooFewRecords{Clusters: c.clusters, Records: len(records)}
	}

	results := make([]RunResult, 0, c.runs)
	for run := 1; run <= c.runs; run++ {
		res, err := c.runOnce(ctx, run, records)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Clusterer) runOnce(ctx context.Context, run int, records []*model.Record) (RunResult, error) {
	runID := uuid.NewString()
	log := c.logger.WithRun(run, runID)
	start := time.Now()

	for _, r := range records {
		r.Cluster = model.NoCluster
	}

	log.LogRunStarted(ctx, len(records))
	c.reporter.RunStarted(run)

	state, err := kmeans.Seed(records, c.clusters, c.dist, c.rng)
	log.LogSeeded(ctx, c.clusters, err)
	if err != nil {
		return RunResult{}, translateError(err)
	}

	ctrl, err := kmeans.NewController(state, c.maxIterations)
	if err != nil {
		return RunResult{}, translateError(err)
	}

	passStart := time.Now()
	phase, err := ctrl.Run(ctx, func(iteration int, s *kmeans.State) {
		elapsed := time.Since(passStart)

		c.metrics.RecordIteration(run, iteration, elapsed)
		log.LogIteration(ctx, iteration, ctrl.Phase().String(), elapsed)
		c.reporter.IterationCompleted(iterationReport(run, iteration, s))

		passStart = time.Now()
	})
	if err != nil {
		log.LogRunFinished(ctx, ctrl.Completed(), false, err)
		return RunResult{}, err
	}

	converged := phase == kmeans.PhaseConverged
	res := RunResult{
		Run:        run,
		ID:         runID,
		Converged:  converged,
		Iterations: ctrl.Completed(),
		Duration:   time.Since(start),
		Clusters:   finalClusters(state),
		Inertia:    inertia(state, c.dist),
		dist:       c.dist,
	}

	c.metrics.RecordRun(res.Iterations, converged, res.Duration)
	log.LogRunFinished(ctx, res.Iterations, converged, nil)
	c.reporter.RunFinished(runSummary(res))

	return res, nil
}

func iterationReport(run, iteration int, s *kmeans.State) report.IterationReport {
	shares := s.Shares()
	out := report.IterationReport{
		Run:       run,
		Iteration: iteration,
		Total:     len(s.Records()),
		Clusters:  make([]report.ClusterShare, len(shares)),
	}
	for i, sh := range shares {
		out.Clusters[i] = report.ClusterShare{ID: sh.ID, Members: sh.Members, Percent: sh.Percent}
	}
	return out
}

func finalClusters(s *kmeans.State) []Cluster {
	records := s.Records()
	shares := s.Shares()
	out := make([]Cluster, 0, s.NumClusters())
	for i, kc := range s.Clusters() {
		idxs := s.Members(kc.ID)
		members := make([]model.RecordID, len(idxs))
		for j, idx := range idxs {
			members[j] = records[idx].ID
		}
		out = append(out, Cluster{
			ID:       kc.ID,
			Centroid: kc.Centroid,
			Members:  members,
			Percent:  shares[i].Percent,
		})
	}
	return out
}

func inertia(s *kmeans.State, dist distance.Func) float64 {
	var sum float64
	for _, r := range s.Records() {
		if c, ok := s.Centroid(r.Cluster); ok {
			sum += dist(r.Features, c)
		}
	}
	return sum
}

func runSummary(res RunResult) report.RunSummary {
	centroids := make([]report.Centroid, len(res.Clusters))
	for i, c := range res.Clusters {
		centroids[i] = report.Centroid{ID: c.ID, Features: c.Centroid}
	}
	return report.RunSummary{
		Run:        res.Run,
		RunID:      res.ID,
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Duration:   res.Duration,
		Centroids:  centroids,
	}
}
