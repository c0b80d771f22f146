package kmeans

import (
	"fmt"
	"math"

	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/model"
)

// Rand is the random source consumed by seeding.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Seed selects k initial centroids from records.
//
// The first centroid is drawn uniformly. Every further centroid is drawn with
// probability proportional to each record's distance (not squared distance)
// to its nearest already chosen centroid. If rounding keeps the cumulative
// walk from reaching the drawn value, the last record is taken.
func Seed(records []*model.Record, k int, dist distance.Func, rng Rand) (*State, error) {
	n := len(records)
	if err := checkCounts(n, k); err != nil {
		return nil, err
	}
	if dist == nil {
		dist = distance.Euclidean
	}

	s := newState(records, k, dist)
	s.addCluster(records[rng.Intn(n)].Features)

	// minDist[i] is the distance of record i to its nearest chosen centroid.
	// Only the newest centroid needs to be compared on each round.
	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.MaxFloat64
	}

	for len(s.clusters) < k {
		newest := s.clusters[len(s.clusters)-1].Centroid

		var sum float64
		for i, r := range records {
			if d := dist(r.Features, newest); d < minDist[i] {
				minDist[i] = d
			}
			sum += minDist[i]
		}

		target := rng.Float64() * sum
		s.addCluster(records[pick(minDist, target)].Features)
	}

	return s, nil
}

func checkCounts(n, k int) error {
	switch {
	case n == 0:
		return ErrNoRecords
	case k < 1:
		return ErrInvalidK
	case uint64(n) > math.MaxUint32:
		return fmt.Errorf("%d records: %w", n, ErrTooManyRecords)
	case k > n:
		return ErrTooManyClusters
	}
	return nil
}

// pick returns the first index whose cumulative weight reaches target.
func pick(weights []float64, target float64) int {
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if cumulative >= target {
			return i
		}
	}
	return len(weights) - 1
}
