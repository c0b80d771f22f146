package testutil

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/hupe1980/kclust/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformRecords generates n records with features drawn uniformly from the
// ranges of the mall customer data set (age 18-70, income 15-137, score 1-99).
// IDs start at 1.
func (r *RNG) UniformRecords(n int) []*model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*model.Record, n)
	for i := 0; i < n; i++ {
		records[i] = model.NewRecord(
			model.RecordID(i+1),
			18+r.rand.Intn(53),
			15+r.rand.Intn(123),
			1+r.rand.Intn(99),
		)
	}
	return records
}

// ClusteredRecords generates n records spread around the given centers.
// Each feature deviates from its center by at most spread. Records cycle
// through the centers in order, so record i belongs to centers[i%len(centers)].
func (r *RNG) ClusteredRecords(n int, centers []model.Features, spread int) []*model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*model.Record, n)
	for i := 0; i < n; i++ {
		c := centers[i%len(centers)]
		var f model.Features
		for d := range f {
			f[d] = c[d]
			if spread > 0 {
				f[d] += r.rand.Intn(2*spread+1) - spread
			}
		}
		records[i] = &model.Record{ID: model.RecordID(i + 1), Features: f}
	}
	return records
}

// Records builds records from (id, age, income, score) rows.
func Records(rows [][4]int) []*model.Record {
	records := make([]*model.Record, len(rows))
	for i, row := range rows {
		records[i] = model.NewRecord(model.RecordID(row[0]), row[1], row[2], row[3])
	}
	return records
}

// CSV renders records in the mall customer layout
// (CustomerID, Gender, Age, Annual Income, Spending Score) with a header row.
func CSV(records []*model.Record) string {
	var sb strings.Builder
	sb.WriteString("CustomerID,Gender,Age,Annual Income (k$),Spending Score (1-100)\n")
	for i, rec := range records {
		gender := "Male"
		if i%2 == 1 {
			gender = "Female"
		}
		fmt.Fprintf(&sb, "%d,%s,%d,%d,%d\n", rec.ID, gender, rec.Age(), rec.Income(), rec.Score())
	}
	return sb.String()
}

// FixedRand is a deterministic kmeans.Rand for tests that need to steer
// seeding. Ints and Floats are returned in order and then repeat the last value.
type FixedRand struct {
	Ints   []int
	Floats []float64

	intPos   int
	floatPos int
}

// Intn returns the next scripted int modulo n.
func (f *FixedRand) Intn(n int) int {
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[min(f.intPos, len(f.Ints)-1)]
	f.intPos++
	return v % n
}

// Float64 returns the next scripted float.
func (f *FixedRand) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[min(f.floatPos, len(f.Floats)-1)]
	f.floatPos++
	return v
}
