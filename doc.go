// Package kclust partitions customer records into k clusters with Lloyd's
// k-means algorithm.
//
// Each record carries three integer features (age, annual income and
// spending score). A run seeds k centroids k-means++ style, then alternates
// an assignment pass and a centroid update until the centroids stop moving
// or the iteration budget is spent. Several independent runs can be
// performed over the same records.
//
// # Quick Start
//
//	records, _ := ingest.Load(ctx, source.NewLocalStore("."), "Mall_Customers.csv")
//
//	c, _ := kclust.New(5,
//	    kclust.WithMaxIterations(10),
//	    kclust.WithRuns(3),
//	    kclust.WithReporter(report.NewText(os.Stdout)),
//	)
//	results, _ := c.Run(ctx, records)
//	best, _ := kclust.BestRun(results)
//
// # Reporting
//
// After every pass the configured report.Reporter receives the share of
// records per cluster, ordered by cluster ID. report.Text prints the classic
// console form:
//
//	Run 1:
//	Iteration 1:
//	Cluster 1: 40.00%
//	Cluster 2: 60.00%
//
// # Termination
//
// A run ends converged when an update pass leaves every centroid unchanged,
// or exhausted when the iteration budget runs out first. Exhaustion is a
// normal outcome and is reported through RunResult.Converged, not an error.
//
// # Errors
//
// Inputs that cannot be clustered fail fast: ErrNoRecords for an empty
// record set, ErrInvalidClusters for k < 1 and ErrTooManyClusters (as
// *ErrTooFewRecords) when k exceeds the number of records.
//
// # Observability
//
// WithLogger attaches a structured slog logger, WithMetricsCollector a
// metrics sink. See the metric/prometheus package for a Prometheus-backed
// collector.
package kclust
