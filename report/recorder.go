package report

import "sync"

// RecordedRun holds everything reported for one run.
type RecordedRun struct {
	Run        int
	Iterations []IterationReport
	Summary    *RunSummary
}

// Recorder keeps all reports in memory.
type Recorder struct {
	mu   sync.Mutex
	runs []RecordedRun
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RunStarted implements Reporter.
func (r *Recorder) RunStarted(run int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, RecordedRun{Run: run})
}

// IterationCompleted implements Reporter.
func (r *Recorder) IterationCompleted(ir IterationReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur := r.current(ir.Run); cur != nil {
		cur.Iterations = append(cur.Iterations, ir)
	}
}

// RunFinished implements Reporter.
func (r *Recorder) RunFinished(s RunSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur := r.current(s.Run); cur != nil {
		cur.Summary = &s
	}
}

func (r *Recorder) current(run int) *RecordedRun {
	for i := len(r.runs) - 1; i >= 0; i-- {
		if r.runs[i].Run == run {
			return &r.runs[i]
		}
	}
	return nil
}

// Runs returns a copy of the recorded runs.
func (r *Recorder) Runs() []RecordedRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedRun, len(r.runs))
	copy(out, r.runs)
	return out
}
