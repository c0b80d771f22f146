package report

import (
	"time"

	"github.com/hupe1980/kclust/model"
)

// ClusterShare is the membership of one cluster after an iteration.
type ClusterShare struct {
	ID      model.ClusterID
	Members int
	// Percent is Members / Total * 100.
	Percent float64
}

// IterationReport describes a completed iteration of a run.
type IterationReport struct {
	// Run is the 1-based run number.
	Run int
	// Iteration is the 1-based iteration number within the run.
	Iteration int
	// Total is the number of records clustered.
	Total int
	// Clusters is ordered by cluster ID.
	Clusters []ClusterShare
}

// Centroid is the final position of a cluster.
type Centroid struct {
	ID       model.ClusterID
	Features model.Features
}

// RunSummary describes a finished run.
type RunSummary struct {
	Run        int
	RunID      string
	Converged  bool
	Iterations int
	Duration   time.Duration
	Centroids  []Centroid
}

// Reporter receives run progress.
type Reporter interface {
	RunStarted(run int)
	IterationCompleted(r IterationReport)
	RunFinished(s RunSummary)
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) RunStarted(int)                     {}
func (discard) IterationCompleted(IterationReport) {}
func (discard) RunFinished(RunSummary)             {}

// Multi fans out to several reporters in order. Nil reporters are skipped.
func Multi(reporters ...Reporter) Reporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type multi []Reporter

func (m multi) RunStarted(run int) {
	for _, r := range m {
		r.RunStarted(run)
	}
}

func (m multi) IterationCompleted(ir IterationReport) {
	for _, r := range m {
		r.IterationCompleted(ir)
	}
}

func (m multi) RunFinished(s RunSummary) {
	for _, r := range m {
		r.RunFinished(s)
	}
}
