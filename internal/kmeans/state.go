package kmeans

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kclust/distance"
	"github.com/hupe1980/kclust/model"
)

// Cluster is a labeled centroid.
type Cluster struct {
	ID       model.ClusterID
	Centroid model.Features
}

// Share is the membership of a single cluster after an assignment pass.
type Share struct {
	ID      model.ClusterID
	Members int
	Percent float64
}

// State is the clustering state of a single run.
//
// Clusters are stored densely, cluster i has ID i+1. Membership is derived
// state: one bitmap of record indexes per cluster, rebuilt by every Assign.
type State struct {
	records  []*model.Record
	clusters []Cluster
	members  []*roaring.Bitmap
	dist     distance.Func
}

func newState(records []*model.Record, capacity int, dist distance.Func) *State {
	return &State{
		records:  records,
		clusters: make([]Cluster, 0, capacity),
		members:  make([]*roaring.Bitmap, 0, capacity),
		dist:     dist,
	}
}

// NewState creates a state with clusters placed at the given centroids.
// Cluster IDs follow the centroid order, starting at 1.
func NewState(records []*model.Record, centroids []model.Features, dist distance.Func) (*State, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if len(centroids) == 0 {
		return nil, ErrInvalidK
	}
	if dist == nil {
		dist = distance.Euclidean
	}

	s := newState(records, len(centroids), dist)
	for _, c := range centroids {
		s.addCluster(c)
	}
	return s, nil
}

func (s *State) addCluster(centroid model.Features) {
	s.clusters = append(s.clusters, Cluster{
		ID:       model.ClusterID(len(s.clusters) + 1),
		Centroid: centroid,
	})
	s.members = append(s.members, roaring.New())
}

// Records returns the records being clustered. The slice is shared, not copied.
func (s *State) Records() []*model.Record {
	return s.records
}

// Clusters returns a copy of the current clusters in ID order.
func (s *State) Clusters() []Cluster {
	out := make([]Cluster, len(s.clusters))
	copy(out, s.clusters)
	return out
}

// NumClusters returns the number of clusters.
func (s *State) NumClusters() int {
	return len(s.clusters)
}

// Centroid returns the centroid of the cluster with the given ID.
func (s *State) Centroid(id model.ClusterID) (model.Features, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(s.clusters) {
		return model.Features{}, false
	}
	return s.clusters[idx].Centroid, true
}

// Members returns the indexes (into Records) of the records assigned to the cluster.
func (s *State) Members(id model.ClusterID) []int {
	idx := int(id) - 1
	if idx < 0 || idx >= len(s.members) {
		return nil
	}
	out := make([]int, 0, s.members[idx].GetCardinality())
	it := s.members[idx].Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// ClearMembership discards the membership of every cluster.
func (s *State) ClearMembership() {
	for _, m := range s.members {
		m.Clear()
	}
}

// Assign partitions the records by nearest centroid.
//
// Membership is rebuilt from empty. Ties go to the cluster that comes first
// in ID order. With no clusters Assign is a no-op.
func (s *State) Assign() {
	s.ClearMembership()
	if len(s.clusters) == 0 {
		return
	}

	for i, r := range s.records {
		best, _ := Nearest(r.Features, s.clusters, s.dist)
		if best < 0 {
			continue
		}
		// Record indexes fit in uint32; Seed rejects larger inputs.
		s.members[best].Add(uint32(i))
		r.Cluster = s.clusters[best].ID
	}
}

// Update recomputes every centroid as the truncating mean of its members.
//
// A cluster without members is reset to the zero vector. Centroids are always
// overwritten. Update reports true iff no centroid changed.
func (s *State) Update() bool {
	unchanged := true

	for j := range s.clusters {
		prev := s.clusters[j].Centroid

		var next model.Features
		if count := int(s.members[j].GetCardinality()); count > 0 {
			var sums [model.NumFeatures]int
			it := s.members[j].Iterator()
			for it.HasNext() {
				f := s.records[it.Next()].Features
				for d := range sums {
					sums[d] += f[d]
				}
			}
			for d := range next {
				next[d] = sums[d] / count
			}
		}

		s.clusters[j].Centroid = next
		if next != prev {
			unchanged = false
		}
	}

	return unchanged
}

// Shares returns the per-cluster membership counts and percentages in ID order.
func (s *State) Shares() []Share {
	total := len(s.records)
	out := make([]Share, len(s.clusters))
	for j, c := range s.clusters {
		members := int(s.members[j].GetCardinality())
		var pct float64
		if total > 0 {
			pct = float64(members) / float64(total) * 100
		}
		out[j] = Share{ID: c.ID, Members: members, Percent: pct}
	}
	return out
}

// Partitioned reports whether the current membership covers every record
// exactly once.
func (s *State) Partitioned() bool {
	var sum uint64
	for _, m := range s.members {
		sum += m.GetCardinality()
	}
	if sum != uint64(len(s.records)) {
		return false
	}
	if len(s.members) == 0 {
		return len(s.records) == 0
	}
	union := roaring.FastOr(s.members...)
	return union.GetCardinality() == uint64(len(s.records))
}

// Nearest returns the index of the cluster closest to f and its distance.
// It returns -1 if clusters is empty.
func Nearest(f model.Features, clusters []Cluster, dist distance.Func) (int, float64) {
	best := -1
	minDist := math.MaxFloat64

	for j := range clusters {
		d := dist(f, clusters[j].Centroid)
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best, minDist
}
