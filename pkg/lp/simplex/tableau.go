package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	pivotTol    = 1e-9
	ratioTol    = 1e-11
	dropTol     = 1e-13
	costRelTol  = 1e-9
	feasRelTol  = 1e-9
	checkEvery  = 16
	stallPivots = 50
)

// errInterrupted is returned when the context ends in the middle of a relaxation
var errInterrupted = errors.New("simplex: interrupted")

// tableau is a dense bounded-variable primal simplex over Ax = b, 0 <= x <= upper.
// Nonbasic columns sit at zero or at their upper bound, so variable bounds never
// become rows.
type tableau struct {
	rows, cols int
	a          *mat.Dense // B^-1 A
	value      []float64  // value of the basic variable of each row
	reduced    []float64
	cost       []float64
	upper      []float64
	atUpper    []bool
	basis      []int
	rowOf      []int

	firstArtificial int
	rhsScale        float64
	costTol         float64
}

func newTableau(rows, cols, artificials int) *tableau {
	total := cols + artificials
	t := &tableau{
		rows:            rows,
		cols:            total,
		a:               mat.NewDense(rows, total, nil),
		value:           make([]float64, rows),
		reduced:         make([]float64, total),
		cost:            make([]float64, total),
		upper:           make([]float64, total),
		atUpper:         make([]bool, total),
		basis:           make([]int, rows),
		rowOf:           make([]int, total),
		firstArtificial: cols,
		rhsScale:        1,
	}
	for j := range t.rowOf {
		t.rowOf[j] = -1
		t.upper[j] = math.Inf(1)
	}
	return t
}

func (t *tableau) setBasic(row, col int) {
	t.basis[row] = col
	t.rowOf[col] = row
}

// solve runs phase 1 when artificial columns exist, then phase 2 on t.cost
func (t *tableau) solve(ctx context.Context) (relaxStatus, error) {
	if t.firstArtificial < t.cols {
		phase1 := make([]float64, t.cols)
		for j := t.firstArtificial; j < t.cols; j++ {
			phase1[j] = 1
		}
		t.price(phase1)
		status, err := t.iterate(ctx)
		if err != nil {
			return relaxInfeasible, err
		}
		if status != relaxOptimal {
			return relaxInfeasible, fmt.Errorf("simplex: phase 1 ended with status %d", status)
		}
		infeasibility := 0.0
		for j := t.firstArtificial; j < t.cols; j++ {
			if r := t.rowOf[j]; r >= 0 {
				infeasibility += math.Abs(t.value[r])
			}
		}
		if infeasibility > math.Max(feasRelTol*t.rhsScale, 1e-7) {
			return relaxInfeasible, nil
		}
		t.retireArtificials()
	}
	t.price(t.cost)
	return t.iterate(ctx)
}

// price recomputes the reduced costs of c against the current basis
func (t *tableau) price(c []float64) {
	copy(t.reduced, c)
	for i, col := range t.basis {
		if cb := c[col]; cb != 0 {
			floats.AddScaled(t.reduced, -cb, t.a.RawRowView(i))
		}
	}
	for _, col := range t.basis {
		t.reduced[col] = 0
	}
	t.costTol = costRelTol * math.Max(1, floats.Norm(c, math.Inf(1)))
}

func (t *tableau) iterate(ctx context.Context) (relaxStatus, error) {
	limit := 50 * (t.rows + t.cols)
	column := make([]float64, t.rows)
	stalled := 0

	for iter := 0; ; iter++ {
		if iter%checkEvery == 0 && ctx.Err() != nil {
			return relaxInfeasible, errInterrupted
		}
		if iter > limit {
			return relaxInfeasible, fmt.Errorf("simplex: iteration limit %d reached", limit)
		}

		// Bland's rule after a run of degenerate pivots
		bland := stalled > stallPivots
		q, dir := t.entering(bland)
		if q < 0 {
			return relaxOptimal, nil
		}
		mat.Col(column, q, t.a)

		r, step := t.leaving(column, dir, bland)
		flip := t.upper[q] <= step
		if flip {
			step = t.upper[q]
		}
		if math.IsInf(step, 1) {
			return relaxUnbounded, nil
		}
		if step > ratioTol {
			stalled = 0
		} else {
			stalled++
		}

		if step != 0 {
			floats.AddScaled(t.value, -dir*step, column)
		}
		if flip {
			t.atUpper[q] = !t.atUpper[q]
			continue
		}

		entered := dir * step
		if t.atUpper[q] {
			entered += t.upper[q]
		}
		leaving := t.basis[r]
		t.rowOf[leaving] = -1
		t.atUpper[leaving] = dir*column[r] < 0 && !math.IsInf(t.upper[leaving], 1)
		t.pivot(r, q)
		t.atUpper[q] = false
		t.value[r] = entered
	}
}

// entering picks the nonbasic column to move and its direction (+1 up, -1 down)
func (t *tableau) entering(bland bool) (int, float64) {
	q, dir, best := -1, 0.0, 0.0
	for j := 0; j < t.cols; j++ {
		if t.rowOf[j] >= 0 || t.upper[j] <= 0 {
			continue
		}
		d := t.reduced[j]
		var s float64
		switch {
		case !t.atUpper[j] && d < -t.costTol:
			s = 1
		case t.atUpper[j] && d > t.costTol:
			s = -1
		default:
			continue
		}
		if bland {
			return j, s
		}
		if math.Abs(d) > best {
			q, dir, best = j, s, math.Abs(d)
		}
	}
	return q, dir
}

// leaving runs the ratio test for a column moving in direction dir. It returns
// the blocking row, or -1 with an infinite step when no basic variable blocks.
func (t *tableau) leaving(column []float64, dir float64, bland bool) (int, float64) {
	row, step := -1, math.Inf(1)
	for i, a := range column {
		g := dir * a
		var limit float64
		switch {
		case g > pivotTol:
			limit = math.Max(t.value[i], 0) / g
		case g < -pivotTol:
			u := t.upper[t.basis[i]]
			if math.IsInf(u, 1) {
				continue
			}
			limit = math.Max(u-t.value[i], 0) / -g
		default:
			continue
		}

		switch {
		case limit < step-ratioTol:
			row, step = i, limit
		case limit <= step+ratioTol:
			if bland && t.basis[i] < t.basis[row] || !bland && math.Abs(a) > math.Abs(column[row]) {
				row = i
			}
			step = math.Min(step, limit)
		}
	}
	return row, step
}

func (t *tableau) pivot(r, q int) {
	prow := t.a.RawRowView(r)
	floats.Scale(1/prow[q], prow)
	prow[q] = 1
	for i := 0; i < t.rows; i++ {
		if i == r {
			continue
		}
		row := t.a.RawRowView(i)
		f := row[q]
		if math.Abs(f) <= dropTol {
			row[q] = 0
			continue
		}
		floats.AddScaled(row, -f, prow)
		row[q] = 0
	}
	if f := t.reduced[q]; f != 0 {
		floats.AddScaled(t.reduced, -f, prow)
	}
	t.reduced[q] = 0
	t.setBasic(r, q)
}

// retireArtificials pins artificial columns at zero and swaps any that are
// still basic for a structural or slack column of the same row. Rows with no
// candidate are redundant and keep their artificial, fixed at zero.
func (t *tableau) retireArtificials() {
	for j := t.firstArtificial; j < t.cols; j++ {
		t.upper[j] = 0
		t.atUpper[j] = false
		r := t.rowOf[j]
		if r < 0 {
			continue
		}
		row := t.a.RawRowView(r)
		q, best := -1, 1e-7
		for k := 0; k < t.firstArtificial; k++ {
			if t.rowOf[k] < 0 && math.Abs(row[k]) > best {
				q, best = k, math.Abs(row[k])
			}
		}
		if q < 0 {
			continue
		}
		entered := 0.0
		if t.atUpper[q] {
			entered = t.upper[q]
		}
		t.rowOf[j] = -1
		t.pivot(r, q)
		t.atUpper[q] = false
		t.value[r] = entered
	}
}

// columnValue is the current value of column j
func (t *tableau) columnValue(j int) float64 {
	if r := t.rowOf[j]; r >= 0 {
		return t.value[r]
	}
	if t.atUpper[j] {
		return t.upper[j]
	}
	return 0
}
