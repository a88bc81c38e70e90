package lp

import (
	"context"
	"time"
)

// Status is the terminal state reported by a solver
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
)

// String method for Status enum
func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "Not Solved"
	}
}

// Options bound a solve
type Options struct {
	TimeLimit   time.Duration
	RelativeGap float64
}

// Outcome carries the solver status and, when available, the variable values.
// A NotSolved outcome with HasSolution set is the best incumbent found before the limit.
type Outcome struct {
	Status      Status
	Objective   float64
	HasSolution bool
	Values      []float64
	Nodes       int
}

// Value returns the value of v, false when the outcome carries no solution for it
func (o *Outcome) Value(v VarID) (float64, bool) {
	if o == nil || !o.HasSolution || int(v) < 0 || int(v) >= len(o.Values) {
		return 0, false
	}
	return o.Values[v], true
}

// TimedOut reports a NotSolved outcome
func (o *Outcome) TimedOut() bool {
	return o.Status == NotSolved
}

// Solver evaluates a Model. Implementations must return within opts.TimeLimit
// (plus bookkeeping) and must not mutate the model.
type Solver interface {
	Solve(ctx context.Context, model *Model, opts Options) (*Outcome, error)
}
