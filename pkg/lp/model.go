// Package lp describes linear and mixed-integer programs independently of the
// solver that evaluates them.
package lp

import (
	"fmt"
	"math"
)

// VarID indexes a variable within its Model
type VarID int

// Var is a decision variable with bounds. Integer variables with bounds [0, 1] are binary.
type Var struct {
	Name    string
	Lower   float64
	Upper   float64
	Integer bool
}

// Term is coefficient × variable
type Term struct {
	Var   VarID
	Coeff float64
}

// Op is the relation of a constraint
type Op int

const (
	LE Op = iota
	GE
	EQ
)

// String method for Op enum
func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Constraint is Σ terms (op) rhs
type Constraint struct {
	Name  string
	Terms []Term
	Op    Op
	RHS   float64
}

// Model is a minimization problem
type Model struct {
	Name        string
	Vars        []Var
	Constraints []Constraint
	Objective   []Term

	names map[string]VarID
}

// NewModel creates an empty minimization model
func NewModel(name string) *Model {
	return &Model{Name: name, names: make(map[string]VarID)}
}

// AddVar declares a continuous variable in [lower, upper]; upper may be +Inf
func (m *Model) AddVar(name string, lower, upper float64) VarID {
	return m.add(Var{Name: name, Lower: lower, Upper: upper})
}

// AddBinary declares an integer variable in {0, 1}
func (m *Model) AddBinary(name string) VarID {
	return m.add(Var{Name: name, Lower: 0, Upper: 1, Integer: true})
}

func (m *Model) add(v Var) VarID {
	if m.names == nil {
		m.names = make(map[string]VarID)
	}
	id := VarID(len(m.Vars))
	m.Vars = append(m.Vars, v)
	m.names[v.Name] = id
	return id
}

// Lookup finds a variable by name
func (m *Model) Lookup(name string) (VarID, bool) {
	id, ok := m.names[name]
	return id, ok
}

// AddConstraint appends a constraint
func (m *Model) AddConstraint(name string, terms []Term, op Op, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Terms: terms, Op: op, RHS: rhs})
}

// Minimize sets the objective terms
func (m *Model) Minimize(terms []Term) {
	m.Objective = terms
}

// HasIntegers reports whether any variable is integral
func (m *Model) HasIntegers() bool {
	for _, v := range m.Vars {
		if v.Integer {
			return true
		}
	}
	return false
}

// Validate checks structural consistency of the model
func (m *Model) Validate() error {
	for i, v := range m.Vars {
		if math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return fmt.Errorf("variable %s: NaN bound", v.Name)
		}
		if math.IsInf(v.Lower, 0) {
			return fmt.Errorf("variable %s: lower bound must be finite", v.Name)
		}
		if v.Upper < v.Lower {
			return fmt.Errorf("variable %s (#%d): upper bound %g below lower bound %g", v.Name, i, v.Upper, v.Lower)
		}
	}
	check := func(where string, terms []Term) error {
		for _, t := range terms {
			if t.Var < 0 || int(t.Var) >= len(m.Vars) {
				return fmt.Errorf("%s: unknown variable %d", where, t.Var)
			}
			if math.IsNaN(t.Coeff) || math.IsInf(t.Coeff, 0) {
				return fmt.Errorf("%s: invalid coefficient for %s", where, m.Vars[t.Var].Name)
			}
		}
		return nil
	}
	if err := check("objective", m.Objective); err != nil {
		return err
	}
	for _, c := range m.Constraints {
		if err := check("constraint "+c.Name, c.Terms); err != nil {
			return err
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("constraint %s: invalid right-hand side", c.Name)
		}
	}
	return nil
}

// Evaluate returns Σ terms at the given point
func Evaluate(terms []Term, values []float64) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.Coeff * values[t.Var]
	}
	return sum
}
