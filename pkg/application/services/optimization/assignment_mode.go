package optimization

import (
	"math"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/lp"
)

// pairVars are the decision variables declared for one feasible pair
type pairVars struct {
	volume   lp.VarID
	selected lp.VarID
	binary   bool
}

// assignmentMode captures what differs between all-or-nothing and fractional
// assignment. Demand and capacity rows are shared and built elsewhere.
type assignmentMode interface {
	kind() entities.AssignmentMode
	declare(m *lp.Model, pair FeasiblePair) pairVars
	costTerms(pair FeasiblePair, v pairVars) []lp.Term
	constrain(m *lp.Model, pairs []FeasiblePair, vars []pairVars, config entities.TransferPlanConfig)
	transferCost(pair FeasiblePair, v pairVars, volume float64, out *lp.Outcome) float64
}

func modeFor(mode entities.AssignmentMode) assignmentMode {
	if mode == entities.FractionalAssignment {
		return continuousMode{}
	}
	return binaryMode{}
}

// continuousMode splits volume freely; transfer cost is prorated by share of demand
type continuousMode struct{}

func (continuousMode) kind() entities.AssignmentMode { return entities.FractionalAssignment }

func (continuousMode) declare(m *lp.Model, pair FeasiblePair) pairVars {
	return pairVars{volume: m.AddVar("assign_"+pair.suffix(), 0, math.Inf(1))}
}

func (continuousMode) costTerms(pair FeasiblePair, v pairVars) []lp.Term {
	return []lp.Term{{Var: v.volume, Coeff: pair.Plant.UnitProductionCost}}
}

func (continuousMode) constrain(*lp.Model, []FeasiblePair, []pairVars, entities.TransferPlanConfig) {}

func (continuousMode) transferCost(pair FeasiblePair, _ pairVars, volume float64, _ *lp.Outcome) float64 {
	if !pair.IsTransfer() {
		return 0
	}
	return pair.Plant.TransferFixedCost * (volume / pair.Product.MonthlyDemand)
}

// binaryMode pays the plant's fixed cost once per selected pair
type binaryMode struct{}

func (binaryMode) kind() entities.AssignmentMode { return entities.BinaryAssignment }

func (binaryMode) declare(m *lp.Model, pair FeasiblePair) pairVars {
	return pairVars{
		selected: m.AddBinary("transfer_" + pair.suffix()),
		volume:   m.AddVar("volume_"+pair.suffix(), 0, math.Inf(1)),
		binary:   true,
	}
}

func (binaryMode) costTerms(pair FeasiblePair, v pairVars) []lp.Term {
	return []lp.Term{
		{Var: v.selected, Coeff: pair.Plant.TransferFixedCost},
		{Var: v.volume, Coeff: pair.Plant.UnitProductionCost},
	}
}

// constrain adds activation rows and, when a non-zero budget is set, the budget row.
// The fixed cost counts for every selected pair, including the current plant.
func (binaryMode) constrain(m *lp.Model, pairs []FeasiblePair, vars []pairVars, config entities.TransferPlanConfig) {
	for i, pair := range pairs {
		m.AddConstraint("activation_"+pair.suffix(), []lp.Term{
			{Var: vars[i].volume, Coeff: 1},
			{Var: vars[i].selected, Coeff: -pair.Product.MonthlyDemand},
		}, lp.LE, 0)
	}

	budget, capped := config.BudgetCap()
	if !capped || len(pairs) == 0 {
		return
	}
	terms := make([]lp.Term, 0, len(pairs))
	for i, pair := range pairs {
		terms = append(terms, lp.Term{Var: vars[i].selected, Coeff: pair.Plant.TransferFixedCost})
	}
	m.AddConstraint("budget", terms, lp.LE, budget)
}

func (binaryMode) transferCost(pair FeasiblePair, v pairVars, _ float64, out *lp.Outcome) float64 {
	selected, ok := out.Value(v.selected)
	if !ok || selected <= 0.5 || !pair.IsTransfer() {
		return 0
	}
	return pair.Plant.TransferFixedCost
}
