package kclust

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kclust/internal/kmeans"
)

var (
	// ErrNoRecords is returned when there is nothing to cluster.
	ErrNoRecords = errors.New("no records to cluster")

	// ErrInvalidClusters is returned when the cluster count is not positive.
	ErrInvalidClusters = errors.New("cluster count must be positive")

	// ErrTooManyClusters is returned when more clusters than records are requested.
	ErrTooManyClusters = errors.New("cluster count exceeds record count")

	// ErrInvalidIterations is returned when the iteration budget is not positive.
	ErrInvalidIterations = errors.New("max iterations must be positive")

	// ErrInvalidRuns is returned when the run count is not positive.
	ErrInvalidRuns = errors.New("run count must be positive")
)

// ErrTooFewRecords indicates that the record set is smaller than the
// requested cluster count.
//
// It satisfies errors.Is(err, ErrTooManyClusters).
type ErrTooFewRecords struct {
	Clusters int
	Records  int
	cause    error
}

func (e *ErrTooFewRecords) Error() string {
	return fmt.Sprintf("cannot seed %d clusters from %d records", e.Clusters, e.Records)
}

func (e *ErrTooFewRecords) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrTooManyClusters}
	}
	return []error{ErrTooManyClusters, e.cause}
}

// ErrInvalidMetric indicates an unsupported distance metric.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidMetric struct {
	Metric string
	cause  error
}

func (e *ErrInvalidMetric) Error() string {
	return fmt.Sprintf("invalid metric: %s", e.Metric)
}

func (e *ErrInvalidMetric) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, kmeans.ErrNoRecords):
		return fmt.Errorf("%w: %w", ErrNoRecords, err)
	case errors.Is(err, kmeans.ErrInvalidK):
		return fmt.Errorf("%w: %w", ErrInvalidClusters, err)
	case errors.Is(err, kmeans.ErrTooManyClusters):
		return fmt.Errorf("%w: %w", ErrTooManyClusters, err)
	case errors.Is(err, kmeans.ErrInvalidMaxIterations):
		return fmt.Errorf("%w: %w", ErrInvalidIterations, err)
	}

	return err
}
