package optimization

import (
	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/lp"
)

const maxUtilizationName = "max_utilization"

// Problem is a built model together with the bookkeeping needed to read its solution
type Problem struct {
	Model     *lp.Model
	Pairs     []FeasiblePair
	Objective entities.ObjectiveFunction

	mode           assignmentMode
	vars           []pairVars
	plants         []*entities.Plant
	maxUtilization lp.VarID
	balanced       bool
}

// Mode returns the assignment mode the problem was built for
func (p *Problem) Mode() entities.AssignmentMode {
	return p.mode.kind()
}

// BuildProblem declares variables over the feasible pairs and assembles the
// objective with demand, capacity and mode-specific constraints. Products and
// plants without pairs get no rows.
func BuildProblem(
	feasibility *Feasibility,
	plants []*entities.Plant,
	config entities.TransferPlanConfig,
) *Problem {
	objective := config.Objective()
	mode := modeFor(config.Mode())

	problem := &Problem{
		Model:     lp.NewModel(objective.ProblemName()),
		Pairs:     feasibility.Pairs,
		Objective: objective,
		mode:      mode,
		vars:      make([]pairVars, len(feasibility.Pairs)),
		plants:    plants,
	}
	m := problem.Model

	for i, pair := range feasibility.Pairs {
		problem.vars[i] = mode.declare(m, pair)
	}

	byProduct, productOrder := problem.groupByProduct()
	byPlant := problem.groupByPlant()

	// Objective
	switch objective {
	case entities.BalanceUtilization:
		problem.maxUtilization = m.AddVar(maxUtilizationName, 0, 100)
		problem.balanced = true
		for _, plant := range plants {
			capacity := plant.EffectiveCapacity()
			indexes := byPlant[plant.PlantID]
			if capacity <= 0 || len(indexes) == 0 {
				continue
			}
			terms := []lp.Term{{Var: problem.maxUtilization, Coeff: 1}}
			for _, i := range indexes {
				terms = append(terms, lp.Term{Var: problem.vars[i].volume, Coeff: -100 / capacity})
			}
			m.AddConstraint("utilization_"+string(plant.PlantID), terms, lp.GE, 0)
		}
		m.Minimize([]lp.Term{{Var: problem.maxUtilization, Coeff: 1}})
	case entities.MinimizeCost:
		terms := make([]lp.Term, 0, 2*len(feasibility.Pairs))
		for i, pair := range feasibility.Pairs {
			terms = append(terms, mode.costTerms(pair, problem.vars[i])...)
		}
		m.Minimize(terms)
	default:
		terms := make([]lp.Term, 0, len(feasibility.Pairs))
		for i, pair := range feasibility.Pairs {
			terms = append(terms, lp.Term{Var: problem.vars[i].volume, Coeff: pair.Plant.UnitProductionCost})
		}
		m.Minimize(terms)
	}

	// Demand satisfaction
	for _, productID := range productOrder {
		indexes := byProduct[productID]
		terms := make([]lp.Term, 0, len(indexes))
		for _, i := range indexes {
			terms = append(terms, lp.Term{Var: problem.vars[i].volume, Coeff: 1})
		}
		demand := feasibility.Pairs[indexes[0]].Product.MonthlyDemand
		m.AddConstraint("demand_"+string(productID), terms, lp.EQ, demand)
	}

	// Capacity
	for _, plant := range plants {
		indexes := byPlant[plant.PlantID]
		if len(indexes) == 0 {
			continue
		}
		terms := make([]lp.Term, 0, len(indexes))
		for _, i := range indexes {
			terms = append(terms, lp.Term{Var: problem.vars[i].volume, Coeff: 1})
		}
		m.AddConstraint("capacity_"+string(plant.PlantID), terms, lp.LE, plant.EffectiveCapacity())
	}

	mode.constrain(m, feasibility.Pairs, problem.vars, config)

	return problem
}

func (p *Problem) groupByProduct() (map[entities.ProductID][]int, []entities.ProductID) {
	groups := make(map[entities.ProductID][]int)
	var order []entities.ProductID
	for i, pair := range p.Pairs {
		id := pair.Product.ProductID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], i)
	}
	return groups, order
}

func (p *Problem) groupByPlant() map[entities.PlantID][]int {
	groups := make(map[entities.PlantID][]int)
	for i, pair := range p.Pairs {
		groups[pair.Plant.PlantID] = append(groups[pair.Plant.PlantID], i)
	}
	return groups
}
