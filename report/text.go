package report

import (
	"fmt"
	"io"
)

// Text writes reports in the console layout:
//
//	Run 1:
//	Iteration 1:
//	Cluster 1: 50.00%
//	Cluster 2: 50.00%
//
// Write errors are remembered and returned by Err.
type Text struct {
	w   io.Writer
	err error
}

// NewText creates a Text reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Err returns the first write error.
func (t *Text) Err() error {
	return t.err
}

func (t *Text) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// RunStarted implements Reporter.
func (t *Text) RunStarted(run int) {
	t.printf("Run %d:\n", run)
}

// IterationCompleted implements Reporter.
func (t *Text) IterationCompleted(r IterationReport) {
	t.printf("Iteration %d:\n", r.Iteration)
	for _, c := range r.Clusters {
		t.printf("Cluster %d: %.2f%%\n", c.ID, c.Percent)
	}
	t.printf("\n")
}

// RunFinished implements Reporter.
func (t *Text) RunFinished(RunSummary) {
	t.printf("\n")
}
