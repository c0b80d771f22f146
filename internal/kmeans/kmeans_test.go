package kmeans

import (
	"math"
	"strconv"
	"testing"

	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/model"
	"github.com/hupe1980/kclust/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func scenarioRecords() []*model.Record {
	return testutil.Records([][4]int{
		{1, 25, 40, 60},
		{2, 27, 42, 58},
		{3, 60, 90, 10},
		{4, 62, 95, 8},
	})
}

func TestSeed_Errors(t *testing.T) {
	rng := testutil.NewRNG(1)

	_, err := Seed(nil, 1, distance.Euclidean, rng)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Seed(scenarioRecords(), 0, distance.Euclidean, rng)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Seed(scenarioRecords(), 5, distance.Euclidean, rng)
	assert.ErrorIs(t, err, ErrTooManyClusters)
}

func TestCheckCounts(t *testing.T) {
	assert.NoError(t, checkCounts(4, 4))
	assert.ErrorIs(t, checkCounts(0, 1), ErrNoRecords)
	assert.ErrorIs(t, checkCounts(4, 0), ErrInvalidK)
	assert.ErrorIs(t, checkCounts(4, 5), ErrTooManyClusters)

	if strconv.IntSize < 64 {
		t.Skip("record count cannot exceed uint32 on 32-bit platforms")
	}
	limit := uint64(math.MaxUint32)
	err := checkCounts(int(limit+1), 2)
	assert.ErrorIs(t, err, ErrTooManyRecords)
	assert.NotErrorIs(t, err, ErrTooManyClusters)
	assert.Contains(t, err.Error(), "4294967296 records")
}

func TestSeed_ClustersOnRecords(t *testing.T) {
	rng := testutil.NewRNG(4711)
	records := rng.UniformRecords(100)

	s, err := Seed(records, 5, distance.Euclidean, rng)
	require.NoError(t, err)
	require.Equal(t, 5, s.NumClusters())

	features := make(map[model.Features]bool, len(records))
	for _, r := range records {
		features[r.Features] = true
	}
	for i, c := range s.Clusters() {
		assert.Equal(t, model.ClusterID(i+1), c.ID)
		assert.True(t, features[c.Centroid], "centroid %v is not a record", c.Centroid)
	}
}

func TestSeed_LinearDistanceWeights(t *testing.T) {
	records := testutil.Records([][4]int{
		{1, 0, 0, 0},
		{2, 1, 0, 0},
		{3, 10, 0, 0},
	})
	// Weights are 0, 1, 10 and the draw lands at 0.55. Squared weights
	// (0, 1, 100) would select the third record instead.
	rng := &testutil.FixedRand{Ints: []int{0}, Floats: []float64{0.05}}

	s, err := Seed(records, 2, distance.Euclidean, rng)
	require.NoError(t, err)

	c, ok := s.Centroid(2)
	require.True(t, ok)
	assert.Equal(t, model.Features{1, 0, 0}, c)
}

func TestSeed_ClampsWhenWalkFallsShort(t *testing.T) {
	records := testutil.Records([][4]int{
		{1, 0, 0, 0},
		{2, 1, 0, 0},
		{3, 10, 0, 0},
	})
	rng := &testutil.FixedRand{Ints: []int{0}, Floats: []float64{2}}

	s, err := Seed(records, 2, distance.Euclidean, rng)
	require.NoError(t, err)
	require.Equal(t, 2, s.NumClusters())

	c, _ := s.Centroid(2)
	assert.Equal(t, model.Features{10, 0, 0}, c)
}

func TestSeed_AllRecordsIdentical(t *testing.T) {
	records := testutil.Records([][4]int{
		{1, 5, 5, 5},
		{2, 5, 5, 5},
		{3, 5, 5, 5},
	})

	s, err := Seed(records, 3, distance.Euclidean, testutil.NewRNG(9))
	require.NoError(t, err)
	require.Equal(t, 3, s.NumClusters())
	for _, c := range s.Clusters() {
		assert.Equal(t, model.Features{5, 5, 5}, c.Centroid)
	}
}

func TestSeed_FirstCentroidUniform(t *testing.T) {
	const (
		n      = 10
		trials = 5000
	)
	rows := make([][4]int, n)
	for i := range rows {
		rows[i] = [4]int{i + 1, i, 0, 0}
	}
	records := testutil.Records(rows)
	rng := testutil.NewRNG(20240601)

	obs := make([]float64, n)
	for i := 0; i < trials; i++ {
		s, err := Seed(records, 1, distance.Euclidean, rng)
		require.NoError(t, err)
		c, _ := s.Centroid(1)
		obs[c[model.Age]]++
	}

	exp := make([]float64, n)
	for i := range exp {
		exp[i] = trials / n
	}
	chi := stat.ChiSquare(obs, exp)
	p := distuv.ChiSquared{K: n - 1}.Survival(chi)
	assert.Greater(t, p, 0.001, "chi-square %.2f, observed %v", chi, obs)
}

func TestAssign_Partition(t *testing.T) {
	rng := testutil.NewRNG(4711)
	records := rng.UniformRecords(250)

	s, err := Seed(records, 4, distance.Euclidean, rng)
	require.NoError(t, err)

	s.Assign()
	assert.True(t, s.Partitioned())

	seen := make(map[int]model.ClusterID)
	for _, c := range s.Clusters() {
		for _, idx := range s.Members(c.ID) {
			_, dup := seen[idx]
			assert.False(t, dup, "record %d assigned twice", idx)
			seen[idx] = c.ID
			assert.Equal(t, c.ID, records[idx].Cluster)
		}
	}
	assert.Len(t, seen, len(records))
}

func TestAssign_TieGoesToFirstCluster(t *testing.T) {
	records := testutil.Records([][4]int{{1, 5, 0, 0}})
	s, err := NewState(records, []model.Features{{0, 0, 0}, {10, 0, 0}}, distance.Euclidean)
	require.NoError(t, err)

	s.Assign()

	assert.Equal(t, []int{0}, s.Members(1))
	assert.Empty(t, s.Members(2))
	assert.Equal(t, model.ClusterID(1), records[0].Cluster)
}

func TestAssign_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(7)
	records := rng.UniformRecords(120)
	s, err := Seed(records, 3, distance.Euclidean, rng)
	require.NoError(t, err)

	s.Assign()
	first := make([][]int, s.NumClusters())
	for i, c := range s.Clusters() {
		first[i] = s.Members(c.ID)
	}

	s.Assign()
	for i, c := range s.Clusters() {
		assert.Equal(t, first[i], s.Members(c.ID))
	}
}

func TestAssign_NoClusters(t *testing.T) {
	records := scenarioRecords()
	s := newState(records, 0, distance.Euclidean)

	s.Assign()

	for _, r := range records {
		assert.False(t, r.Assigned())
	}
	assert.False(t, s.Partitioned())
}

func TestUpdate_TruncatingMean(t *testing.T) {
	records := testutil.Records([][4]int{
		{1, 1, 2, 3},
		{2, 2, 3, 5},
	})
	s, err := NewState(records, []model.Features{{0, 0, 0}}, distance.Euclidean)
	require.NoError(t, err)

	s.Assign()
	unchanged := s.Update()

	assert.False(t, unchanged)
	c, _ := s.Centroid(1)
	assert.Equal(t, model.Features{1, 2, 4}, c)

	s.Assign()
	assert.True(t, s.Update())
}

func TestUpdate_EmptyClusterResetsToZero(t *testing.T) {
	s, err := NewState(scenarioRecords(), []model.Features{{25, 40, 60}, {1000, 1000, 1000}}, distance.Euclidean)
	require.NoError(t, err)

	s.Assign()
	assert.Empty(t, s.Members(2))

	s.Update()

	c, _ := s.Centroid(2)
	assert.Equal(t, model.Features{0, 0, 0}, c)
}

func TestShares(t *testing.T) {
	s, err := NewState(scenarioRecords(), []model.Features{{25, 40, 60}, {60, 90, 10}}, distance.Euclidean)
	require.NoError(t, err)

	s.Assign()
	shares := s.Shares()

	require.Len(t, shares, 2)
	assert.Equal(t, Share{ID: 1, Members: 2, Percent: 50}, shares[0])
	assert.Equal(t, Share{ID: 2, Members: 2, Percent: 50}, shares[1])
}

func TestNewState_Errors(t *testing.T) {
	_, err := NewState(nil, []model.Features{{0, 0, 0}}, nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = NewState(scenarioRecords(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestNearest(t *testing.T) {
	clusters := []Cluster{
		{ID: 1, Centroid: model.Features{0, 0, 0}},
		{ID: 2, Centroid: model.Features{10, 10, 10}},
		{ID: 3, Centroid: model.Features{20, 20, 20}},
	}

	idx, d := Nearest(model.Features{19, 19, 19}, clusters, distance.Euclidean)
	assert.Equal(t, 2, idx)
	assert.InDelta(t, 1.7320508, d, 1e-6)

	idx, _ = Nearest(model.Features{0, 0, 0}, nil, distance.Euclidean)
	assert.Equal(t, -1, idx)
}
