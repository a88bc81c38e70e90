// Package simplex is a pure-Go LP/MILP backend: continuous relaxations are
// solved with a bounded-variable primal simplex over a gonum dense tableau and
// integer variables are handled by best-bound branch and bound.
package simplex

import (
	"container/heap"
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/vsinha/transferplan/pkg/lp"
)

const (
	integralityTol = 1e-6
	boundSlop      = 1e-9
)

// Solver implements lp.Solver. Searches run on the calling goroutine; a
// Solver created by New admits at most GOMAXPROCS of them at once and the
// rest wait for a slot until their deadline.
type Solver struct {
	slots chan struct{}
}

// New returns a branch-and-bound solver
func New() *Solver {
	return NewWithConcurrency(runtime.GOMAXPROCS(0))
}

// NewWithConcurrency returns a solver admitting at most n concurrent searches
func NewWithConcurrency(n int) *Solver {
	if n < 1 {
		n = 1
	}
	return &Solver{slots: make(chan struct{}, n)}
}

var _ lp.Solver = (*Solver)(nil)

// Solve minimizes the model. When opts.TimeLimit elapses (or ctx is done)
// before the search completes, the outcome is NotSolved and carries the best
// integer-feasible point found so far, if any.
func (s *Solver) Solve(ctx context.Context, model *lp.Model, opts lp.Options) (*lp.Outcome, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}
	if ctx.Err() != nil {
		return &lp.Outcome{Status: lp.NotSolved}, nil
	}

	if s.slots != nil {
		select {
		case s.slots <- struct{}{}:
			defer func() { <-s.slots }()
		case <-ctx.Done():
			return &lp.Outcome{Status: lp.NotSolved}, nil
		}
	}

	srch := &search{model: model, gap: math.Max(opts.RelativeGap, 0), best: math.Inf(1)}
	return srch.run(ctx)
}

type node struct {
	lower []float64
	upper []float64
	bound float64
	depth int
}

// nodeQueue orders open nodes by bound, deeper nodes first on ties
type nodeQueue []node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	return q[i].depth > q[j].depth
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

type search struct {
	model *lp.Model
	gap   float64

	incumbent []float64
	best      float64
	nodes     int
}

func (s *search) run(ctx context.Context) (*lp.Outcome, error) {
	n := len(s.model.Vars)
	root := node{lower: make([]float64, n), upper: make([]float64, n), bound: math.Inf(-1)}
	for j, v := range s.model.Vars {
		root.lower[j] = v.Lower
		root.upper[j] = v.Upper
		if v.Integer {
			root.lower[j] = math.Ceil(v.Lower - integralityTol)
			root.upper[j] = math.Floor(v.Upper + integralityTol)
		}
	}

	status, values, err := solveRelaxation(ctx, s.model, root.lower, root.upper)
	s.nodes++
	if errors.Is(err, errInterrupted) {
		return s.interrupted(), nil
	}
	if err != nil {
		return nil, err
	}
	switch status {
	case relaxInfeasible:
		return &lp.Outcome{Status: lp.Infeasible, Nodes: s.nodes}, nil
	case relaxUnbounded:
		return &lp.Outcome{Status: lp.Unbounded, Nodes: s.nodes}, nil
	}

	var nodeErr error
	open := &nodeQueue{}
	s.branch(ctx, root, values, open)

	for open.Len() > 0 {
		if ctx.Err() != nil {
			return s.interrupted(), nil
		}
		nd := heap.Pop(open).(node)
		// the queue is ordered by bound, so nothing left can improve either
		if s.prunable(nd.bound) {
			break
		}

		status, values, err := solveRelaxation(ctx, s.model, nd.lower, nd.upper)
		s.nodes++
		if errors.Is(err, errInterrupted) {
			return s.interrupted(), nil
		}
		if err != nil {
			nodeErr = err
			continue
		}
		if status != relaxOptimal {
			continue
		}
		s.branch(ctx, nd, values, open)
	}

	if s.incumbent == nil {
		if nodeErr != nil {
			return nil, nodeErr
		}
		return &lp.Outcome{Status: lp.Infeasible, Nodes: s.nodes}, nil
	}
	return &lp.Outcome{
		Status:      lp.Optimal,
		Objective:   s.best,
		HasSolution: true,
		Values:      clone(s.incumbent),
		Nodes:       s.nodes,
	}, nil
}

// branch records an integral relaxation as a candidate incumbent, or queues
// the two children of its most fractional integer variable.
func (s *search) branch(ctx context.Context, nd node, values []float64, open *nodeQueue) {
	obj := lp.Evaluate(s.model.Objective, values)
	if s.prunable(obj) {
		return
	}

	j := s.mostFractional(values)
	if j < 0 {
		// re-solve with the integers pinned so the incumbent is exact
		if !s.roundUp(ctx, nd, values) {
			s.offer(values, obj)
		}
		return
	}

	if nd.depth == 0 || s.incumbent == nil {
		s.roundUp(ctx, nd, values)
		if s.prunable(obj) {
			return
		}
	}

	v := values[j]
	down := node{lower: clone(nd.lower), upper: clone(nd.upper), bound: obj, depth: nd.depth + 1}
	down.upper[j] = math.Floor(v)
	up := node{lower: clone(nd.lower), upper: clone(nd.upper), bound: obj, depth: nd.depth + 1}
	up.lower[j] = math.Ceil(v)
	heap.Push(open, down)
	heap.Push(open, up)
}

// roundUp fixes every integer variable at the ceiling of its relaxed value
// and re-solves the continuous part. For activation-style models this turns
// the relaxation into a feasible incumbent. It reports whether one was found.
func (s *search) roundUp(ctx context.Context, nd node, values []float64) bool {
	lower := clone(nd.lower)
	upper := clone(nd.upper)
	for j, v := range s.model.Vars {
		if !v.Integer {
			continue
		}
		r := math.Min(math.Ceil(values[j]-integralityTol), upper[j])
		lower[j], upper[j] = r, r
	}
	status, rounded, err := solveRelaxation(ctx, s.model, lower, upper)
	s.nodes++
	if err != nil || status != relaxOptimal {
		return false
	}
	s.offer(rounded, lp.Evaluate(s.model.Objective, rounded))
	return true
}

func (s *search) mostFractional(values []float64) int {
	branch := -1
	worst := integralityTol
	for j, v := range s.model.Vars {
		if !v.Integer {
			continue
		}
		frac := values[j] - math.Floor(values[j])
		dist := math.Min(frac, 1-frac)
		if dist > worst {
			worst = dist
			branch = j
		}
	}
	return branch
}

func (s *search) offer(values []float64, obj float64) {
	if obj >= s.best-boundSlop {
		return
	}
	snapped := clone(values)
	for j, v := range s.model.Vars {
		if v.Integer {
			snapped[j] = math.Round(snapped[j])
		}
	}
	s.incumbent = snapped
	s.best = lp.Evaluate(s.model.Objective, snapped)
}

// prunable reports whether a node with the given bound cannot improve the
// incumbent by more than the relative gap.
func (s *search) prunable(bound float64) bool {
	if s.incumbent == nil {
		return false
	}
	tol := math.Max(s.gap*math.Abs(s.best), boundSlop)
	return bound >= s.best-tol
}

func (s *search) interrupted() *lp.Outcome {
	out := &lp.Outcome{Status: lp.NotSolved, Nodes: s.nodes}
	if s.incumbent != nil {
		out.HasSolution = true
		out.Objective = s.best
		out.Values = clone(s.incumbent)
	}
	return out
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
