package kmeans

import (
	"context"
	"fmt"
)

// Phase is the state of a run.
type Phase int

const (
	// PhaseInit means seeding produced clusters and no pass has run yet.
	PhaseInit Phase = iota
	// PhaseIterating means at least one pass ran and the run is not finished.
	PhaseIterating
	// PhaseConverged means the last update left every centroid unchanged.
	PhaseConverged
	// PhaseExhausted means the iteration budget ran out before convergence.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseIterating:
		return "iterating"
	case PhaseConverged:
		return "converged"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// Terminal reports whether no further passes will run.
func (p Phase) Terminal() bool {
	return p == PhaseConverged || p == PhaseExhausted
}

// Controller drives repeated assignment/update passes over a State.
type Controller struct {
	state         *State
	maxIterations int
	iteration     int
	phase         Phase
}

// NewController creates a controller in PhaseInit with the iteration counter at 1.
func NewController(s *State, maxIterations int) (*Controller, error) {
	if maxIterations < 1 {
		return nil, ErrInvalidMaxIterations
	}
	return &Controller{
		state:         s,
		maxIterations: maxIterations,
		iteration:     1,
		phase:         PhaseInit,
	}, nil
}

// State returns the state being driven.
func (c *Controller) State() *State {
	return c.state
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Iteration returns the number of the next pass. It starts at 1.
func (c *Controller) Iteration() int {
	return c.iteration
}

// Completed returns the number of passes that ran.
func (c *Controller) Completed() int {
	return c.iteration - 1
}

// Step runs a single pass and returns the resulting phase.
// Step on a terminal controller does nothing.
func (c *Controller) Step() Phase {
	if c.phase.Terminal() {
		return c.phase
	}
	if c.iteration > c.maxIterations {
		c.phase = PhaseExhausted
		return c.phase
	}

	c.phase = PhaseIterating
	c.state.Assign()
	unchanged := c.state.Update()
	c.iteration++

	switch {
	case unchanged:
		c.phase = PhaseConverged
	case c.iteration > c.maxIterations:
		c.phase = PhaseExhausted
	}
	return c.phase
}

// Run steps until a terminal phase is reached or ctx is done.
// ctx is checked before every pass. fn, if non-nil, is called after every
// pass with the pass number; it may cancel ctx to stop the run.
func (c *Controller) Run(ctx context.Context, fn func(iteration int, s *State)) (Phase, error) {
	for !c.phase.Terminal() {
		if err := ctx.Err(); err != nil {
			return c.phase, err
		}
		c.Step()
		if fn != nil {
			fn(c.Completed(), c.state)
		}
	}
	return c.phase, nil
}
