package distance

import (
	"fmt"
	"strings"

	"github.com/hupe1980/kclust/model"
	"gonum.org/v1/gonum/floats"
)

// Euclidean calculates the Euclidean (L2) distance between two feature vectors.
// The result is the true root-sum-of-squares, not its square.
func Euclidean(a, b model.Features) float64 {
	return floats.Distance(a.Float64s(), b.Float64s(), 2)
}

// SquaredEuclidean calculates the squared Euclidean distance between two feature vectors.
func SquaredEuclidean(a, b model.Features) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}

// Manhattan calculates the L1 distance between two feature vectors.
func Manhattan(a, b model.Features) float64 {
	return floats.Distance(a.Float64s(), b.Float64s(), 1)
}

// Metric represents the distance metric used for record comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredEuclidean
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricSquaredEuclidean:
		return "squared_euclidean"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// ParseMetric resolves a metric from its name. The empty string maps to MetricEuclidean.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euclidean", "l2":
		return MetricEuclidean, nil
	case "squared_euclidean", "squaredl2":
		return MetricSquaredEuclidean, nil
	case "manhattan", "l1":
		return MetricManhattan, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", s)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b model.Features) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
