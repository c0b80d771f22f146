package model

import (
	"fmt"
)

// NumFeatures is the number of numeric features carried by every record.
const NumFeatures = 3

// Feature indexes into Features.
const (
	Age = iota
	Income
	Score
)

// RecordID is the identifier of a record as read from the input source.
type RecordID int

// ClusterID identifies a cluster within a run. Valid IDs start at 1.
type ClusterID int

// NoCluster is the assignment of a record before the first assignment pass.
const NoCluster ClusterID = 0

// Features is the (age, income, score) feature vector of a record or centroid.
type Features [NumFeatures]int

// Float64s returns the features as a float64 slice.
func (f Features) Float64s() []float64 {
	out := make([]float64, NumFeatures)
	for i, v := range f {
		out[i] = float64(v)
	}
	return out
}

// String returns a string representation of the features.
func (f Features) String() string {
	return fmt.Sprintf("(%d,%d,%d)", f[Age], f[Income], f[Score])
}

// Record is a single input data point.
//
// ID and Features are immutable after ingestion. Cluster is the only mutable
// field; it is NoCluster until an assignment pass has run.
type Record struct {
	ID       RecordID
	Features Features
	Cluster  ClusterID
}

// NewRecord creates an unassigned record.
func NewRecord(id RecordID, age, income, score int) *Record {
	return &Record{
		ID:       id,
		Features: Features{age, income, score},
	}
}

// Age returns the age feature.
func (r *Record) Age() int { return r.Features[Age] }

// Income returns the income feature.
func (r *Record) Income() int { return r.Features[Income] }

// Score returns the spending score feature.
func (r *Record) Score() int { return r.Features[Score] }

// Assigned reports whether the record has been assigned to a cluster.
func (r *Record) Assigned() bool { return r.Cluster != NoCluster }

// String returns a string representation of the Record.
func (r *Record) String() string {
	return fmt.Sprintf("Record(%d:%s->%d)", r.ID, r.Features, r.Cluster)
}
