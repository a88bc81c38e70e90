package simplex

import (
	"context"
	"math"

	"github.com/vsinha/transferplan/pkg/lp"
)

const (
	fixTol = 1e-12
	rowTol = 1e-7
)

// relaxStatus is the result of one continuous relaxation
type relaxStatus int

const (
	relaxOptimal relaxStatus = iota
	relaxInfeasible
	relaxUnbounded
)

type sparseRow struct {
	coeffs map[int]float64
	op     lp.Op
	rhs    float64
}

// solveRelaxation minimizes the model with integrality dropped and the
// variable bounds replaced by lower and upper. Values are in model space.
// It returns errInterrupted when ctx ends first.
func solveRelaxation(ctx context.Context, m *lp.Model, lower, upper []float64) (relaxStatus, []float64, error) {
	n := len(m.Vars)
	values := make([]float64, n)

	cost := make([]float64, n)
	for _, t := range m.Objective {
		cost[t.Var] += t.Coeff
	}

	// Pass 1: eliminate fixed variables and shift the rest to a zero lower bound
	free := make([]bool, n)
	for j := 0; j < n; j++ {
		if upper[j] < lower[j]-fixTol {
			return relaxInfeasible, nil, nil
		}
		values[j] = lower[j]
		free[j] = upper[j]-lower[j] > fixTol
	}

	rows := make([]sparseRow, 0, len(m.Constraints))
	for _, c := range m.Constraints {
		row := sparseRow{coeffs: make(map[int]float64, len(c.Terms)), op: c.Op, rhs: c.RHS}
		for _, t := range c.Terms {
			j := int(t.Var)
			row.rhs -= t.Coeff * lower[j]
			if free[j] {
				row.coeffs[j] += t.Coeff
			}
		}
		for j, a := range row.coeffs {
			if a == 0 {
				delete(row.coeffs, j)
			}
		}
		if len(row.coeffs) > 0 {
			rows = append(rows, row)
			continue
		}
		// Pass 2: rows without structural coefficients only need checking
		if !emptyRowHolds(row) {
			return relaxInfeasible, nil, nil
		}
	}

	// Pass 3: map structural columns; free variables outside every row go
	// straight to the bound their cost prefers
	used := make([]bool, n)
	for _, row := range rows {
		for j := range row.coeffs {
			used[j] = true
		}
	}
	colOf := make([]int, n)
	structural := 0
	for j := 0; j < n; j++ {
		colOf[j] = -1
		if !free[j] {
			continue
		}
		if !used[j] {
			if cost[j] < 0 {
				if math.IsInf(upper[j], 1) {
					return relaxUnbounded, nil, nil
				}
				values[j] = upper[j]
			}
			continue
		}
		colOf[j] = structural
		structural++
	}
	if len(rows) == 0 {
		return relaxOptimal, values, nil
	}

	t := buildTableau(rows, colOf, structural, cost, lower, upper)
	status, err := t.solve(ctx)
	if err != nil || status != relaxOptimal {
		return status, nil, err
	}

	for j := 0; j < n; j++ {
		if colOf[j] < 0 {
			continue
		}
		v := lower[j] + t.columnValue(colOf[j])
		values[j] = math.Min(math.Max(v, lower[j]), upper[j])
	}
	return relaxOptimal, values, nil
}

// buildTableau lays out structural, slack and artificial columns. Each row is
// signed so its right-hand side is non-negative; rows whose slack then has a
// +1 coefficient start with the slack basic, the others get an artificial.
func buildTableau(rows []sparseRow, colOf []int, structural int, cost, lower, upper []float64) *tableau {
	slacks := 0
	for _, row := range rows {
		if row.op != lp.EQ {
			slacks++
		}
	}
	signs := make([]float64, len(rows))
	slackCoeff := make([]float64, len(rows))
	artificials := 0
	for i, row := range rows {
		switch row.op {
		case lp.LE:
			slackCoeff[i] = 1
		case lp.GE:
			slackCoeff[i] = -1
		}
		signs[i] = 1
		if row.rhs < 0 || row.rhs == 0 && slackCoeff[i] < 0 {
			signs[i] = -1
		}
		if signs[i]*slackCoeff[i] <= 0 {
			artificials++
		}
	}

	t := newTableau(len(rows), structural+slacks, artificials)
	for j, col := range colOf {
		if col < 0 {
			continue
		}
		t.cost[col] = cost[j]
		t.upper[col] = upper[j] - lower[j]
	}

	slack := structural
	artificial := structural + slacks
	for i, row := range rows {
		sign := signs[i]
		r := t.a.RawRowView(i)
		for j, a := range row.coeffs {
			r[colOf[j]] = sign * a
		}
		t.value[i] = sign * row.rhs
		t.rhsScale = math.Max(t.rhsScale, math.Abs(row.rhs))

		basic := false
		if slackCoeff[i] != 0 {
			r[slack] = sign * slackCoeff[i]
			if sign*slackCoeff[i] > 0 {
				t.setBasic(i, slack)
				basic = true
			}
			slack++
		}
		if !basic {
			r[artificial] = 1
			t.setBasic(i, artificial)
			artificial++
		}
	}
	return t
}

func emptyRowHolds(row sparseRow) bool {
	switch row.op {
	case lp.LE:
		return row.rhs >= -rowTol
	case lp.GE:
		return row.rhs <= rowTol
	default:
		return math.Abs(row.rhs) <= rowTol
	}
}
