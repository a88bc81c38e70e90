package optimization

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/lp"
)

// VolumeThreshold is the smallest solved volume reported as an assignment
const VolumeThreshold = 0.01

// Diagnostics attached to non-optimal results
const (
	DiagnosticInfeasible        = "Problem is infeasible — no solution satisfies all constraints"
	DiagnosticUnbounded         = "Problem is unbounded"
	DiagnosticTimeoutNoResult   = "Solver timed out without finding any solution"
	DiagnosticTimeoutSuboptimal = "Solver timed out — returning best solution found (may be sub-optimal)"
)

var centi = decimal.New(1, -2)

// round2 rounds half away from zero to two decimal places
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	if f == 0 {
		return 0
	}
	return f
}

// extract converts a solver outcome into a plan. result already carries the
// run identity; extract fills in assignments, aggregates and diagnostics.
func extract(problem *Problem, outcome *lp.Outcome, solveErr error, result *entities.TransferPlanResult) {
	result.Assignments = []entities.TransferAssignment{}

	switch {
	case solveErr != nil:
		result.SolverStatus = "Error"
		result.ConstraintsViolated = append(result.ConstraintsViolated, fmt.Sprintf("Solver status: %v", solveErr))
		return
	case outcome.Status == lp.Optimal:
		result.SolverStatus = outcome.Status.String()
	case outcome.Status == lp.NotSolved && outcome.HasSolution:
		result.SolverStatus = outcome.Status.String()
		result.ConstraintsViolated = append(result.ConstraintsViolated, DiagnosticTimeoutSuboptimal)
	default:
		result.SolverStatus = outcome.Status.String()
		result.ConstraintsViolated = append(result.ConstraintsViolated, statusDiagnostic(outcome.Status))
		return
	}
	result.Feasible = true

	volumes := make([]float64, len(problem.Pairs))
	var planned []plannedVolume
	for i := range problem.Pairs {
		if v, ok := outcome.Value(problem.vars[i].volume); ok {
			volumes[i] = math.Max(v, 0)
		}
		if volumes[i] > VolumeThreshold {
			planned = append(planned, plannedVolume{pair: i, volume: volumes[i]})
		}
	}

	// Costs and utilization follow the trimmed volumes
	trimToCapacity(problem, planned)
	for _, p := range planned {
		volumes[p.pair] = p.volume
	}
	utilization := plantUtilization(problem, volumes)

	var totalTransfer, totalMonthly decimal.Decimal
	var plantOrder []entities.PlantID
	seen := make(map[entities.PlantID]bool)

	for _, p := range planned {
		pair, volume := problem.Pairs[p.pair], p.volume
		transferCost := problem.mode.transferCost(pair, problem.vars[p.pair], volume, outcome)
		productionCost := volume * pair.Plant.UnitProductionCost

		var source *entities.PlantID
		if pair.Product.HasCurrentPlant() {
			id := pair.Product.CurrentPlantID
			source = &id
		}

		result.Assignments = append(result.Assignments, entities.TransferAssignment{
			ProductID:             pair.Product.ProductID,
			SourcePlantID:         source,
			TargetPlantID:         pair.Plant.PlantID,
			AssignedVolume:        round2(volume),
			Utilization:           round2(utilization[pair.Plant.PlantID]),
			IsTransfer:            pair.IsTransfer(),
			TransferCost:          round2(transferCost),
			MonthlyProductionCost: round2(productionCost),
			TotalCost:             round2(transferCost + productionCost),
			StartMonth:            pair.Plant.StartMonth(),
		})

		totalTransfer = totalTransfer.Add(decimal.NewFromFloat(transferCost))
		totalMonthly = totalMonthly.Add(decimal.NewFromFloat(productionCost))
		if !seen[pair.Plant.PlantID] {
			seen[pair.Plant.PlantID] = true
			plantOrder = append(plantOrder, pair.Plant.PlantID)
		}
	}

	result.TotalTransferCost = round2(totalTransfer.InexactFloat64())
	result.TotalMonthlyCost = round2(totalMonthly.InexactFloat64())
	result.TotalCost = round2(totalTransfer.Add(totalMonthly).InexactFloat64())

	if len(plantOrder) > 0 {
		sum := decimal.Zero
		for _, id := range plantOrder {
			sum = sum.Add(decimal.NewFromFloat(round2(utilization[id])))
		}
		avg, _ := sum.Div(decimal.NewFromInt(int64(len(plantOrder)))).Round(2).Float64()
		result.AverageUtilization = avg
	}
}

func statusDiagnostic(status lp.Status) string {
	switch status {
	case lp.Infeasible:
		return DiagnosticInfeasible
	case lp.Unbounded:
		return DiagnosticUnbounded
	case lp.NotSolved:
		return DiagnosticTimeoutNoResult
	default:
		return fmt.Sprintf("Solver status: %s", status)
	}
}

// plantUtilization is assigned volume over effective capacity, in percent.
// Plants with zero effective capacity report 0.
func plantUtilization(problem *Problem, volumes []float64) map[entities.PlantID]float64 {
	assigned := make(map[entities.PlantID]float64)
	for i, pair := range problem.Pairs {
		assigned[pair.Plant.PlantID] += volumes[i]
	}

	utilization := make(map[entities.PlantID]float64, len(problem.plants))
	for _, plant := range problem.plants {
		capacity := plant.EffectiveCapacity()
		if capacity <= 0 {
			utilization[plant.PlantID] = 0
			continue
		}
		utilization[plant.PlantID] = assigned[plant.PlantID] / capacity * 100
	}
	return utilization
}

// plannedVolume is a solved volume above the reporting threshold
type plannedVolume struct {
	pair   int
	volume float64
}

// trimToCapacity takes a cent off the largest volume of any plant whose
// rounded volumes sum above its effective capacity. Rounding each volume can
// otherwise overshoot a binding capacity row by a few cents. A trimmed volume
// is replaced by its rounded, trimmed value.
func trimToCapacity(problem *Problem, planned []plannedVolume) {
	for _, plant := range problem.plants {
		limit := decimal.NewFromFloat(plant.EffectiveCapacity())
		for {
			total := decimal.Zero
			largest := -1
			for i, p := range planned {
				if problem.Pairs[p.pair].Plant.PlantID != plant.PlantID {
					continue
				}
				total = total.Add(decimal.NewFromFloat(round2(p.volume)))
				if largest < 0 || round2(p.volume) > round2(planned[largest].volume) {
					largest = i
				}
			}
			if largest < 0 || total.LessThanOrEqual(limit) {
				break
			}
			trimmed := decimal.NewFromFloat(round2(planned[largest].volume)).Sub(centi)
			planned[largest].volume, _ = trimmed.Float64()
		}
	}
}
