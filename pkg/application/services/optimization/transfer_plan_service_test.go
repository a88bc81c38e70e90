package optimization

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/services"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/transferplan/pkg/infrastructure/testing"
	"github.com/vsinha/transferplan/pkg/lp"
	"github.com/vsinha/transferplan/pkg/lp/simplex"
)

func newTestService() *TransferPlanService {
	return NewTransferPlanServiceWithConfig(EngineConfig{TimeLimit: 3 * time.Second, RelativeGap: DefaultRelativeGap}, simplex.New())
}

func generate(t *testing.T, config entities.TransferPlanConfig, products []*entities.Product, plants []*entities.Plant) *entities.TransferPlanResult {
	t.Helper()
	productRepo, plantRepo := testhelpers.BuildCatalog(products, plants)
	result, err := newTestService().GenerateTransferPlan(context.Background(), config, productRepo, plantRepo)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestScenarioA_StaysAtCurrentPlant(t *testing.T) {
	result := generate(t, entities.DefaultTransferPlanConfig(),
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 10, 1000)},
	)

	require.True(t, result.Feasible)
	assert.Empty(t, result.ConstraintsViolated)
	require.Len(t, result.Assignments, 1)

	a := result.Assignments[0]
	assert.Equal(t, entities.PlantID("X"), a.TargetPlantID)
	require.NotNil(t, a.SourcePlantID)
	assert.Equal(t, entities.PlantID("X"), *a.SourcePlantID)
	assert.False(t, a.IsTransfer)
	assert.Equal(t, 100.0, a.AssignedVolume)
	assert.Equal(t, 0.0, a.TransferCost)
	assert.Equal(t, 1000.0, a.MonthlyProductionCost)
	assert.Equal(t, 1000.0, a.TotalCost)
	assert.Equal(t, 66.67, a.Utilization)
	assert.Equal(t, 0, a.StartMonth)

	assert.Equal(t, 66.67, result.AverageUtilization)
	assert.Equal(t, 1000.0, result.TotalCost)
	assert.Equal(t, "Optimal", result.SolverStatus)
	assert.Equal(t, entities.BinaryAssignment, result.Mode)
	assert.NotEmpty(t, result.RunID)
}

func TestScenarioB_TransfersToOnlyPlantThatFits(t *testing.T) {
	productRepo, plantRepo := testhelpers.BuildTransferScenario()
	result, err := newTestService().GenerateTransferPlan(context.Background(), entities.DefaultTransferPlanConfig(), productRepo, plantRepo)
	require.NoError(t, err)

	require.True(t, result.Feasible)
	require.Len(t, result.Assignments, 1)
	a := result.Assignments[0]
	assert.Equal(t, entities.PlantID("Y"), a.TargetPlantID)
	assert.True(t, a.IsTransfer)
	assert.Equal(t, 100.0, a.AssignedVolume)
	assert.Equal(t, 5000.0, a.TransferCost)
	assert.Equal(t, 1200.0, a.MonthlyProductionCost)
	assert.Equal(t, 6200.0, a.TotalCost)
	assert.Equal(t, 50.0, a.Utilization)

	assert.Equal(t, 5000.0, result.TotalTransferCost)
	assert.Equal(t, 1200.0, result.TotalMonthlyCost)
	assert.Equal(t, 6200.0, result.TotalCost)
}

func TestScenarioC_DemandExceedsEveryPlant(t *testing.T) {
	result := generate(t, entities.DefaultTransferPlanConfig(),
		[]*entities.Product{testhelpers.Product("P1", 1000, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 100, 10, 1000)},
	)

	assert.False(t, result.Feasible)
	assert.Empty(t, result.Assignments)
	assert.Contains(t, result.ConstraintsViolated, DiagnosticInfeasible)
	assert.Zero(t, result.TotalCost)
	assert.Zero(t, result.AverageUtilization)
	assert.Equal(t, "Infeasible", result.SolverStatus)
}

func TestScenarioD_BudgetKeepsProductHome(t *testing.T) {
	products := []*entities.Product{testhelpers.Product("P1", 100, "X")}
	plants := []*entities.Plant{
		testhelpers.Plant("X", 150, 20, 0),
		testhelpers.Plant("Y", 150, 5, 500),
	}

	unconstrained := generate(t, entities.DefaultTransferPlanConfig(), products, plants)
	require.True(t, unconstrained.Feasible)
	require.Len(t, unconstrained.Assignments, 1)
	assert.Equal(t, entities.PlantID("Y"), unconstrained.Assignments[0].TargetPlantID)

	budget := 400.0
	capped := generate(t, entities.TransferPlanConfig{BudgetCapital: &budget}, products, plants)
	require.True(t, capped.Feasible)
	require.Len(t, capped.Assignments, 1)
	assert.Equal(t, entities.PlantID("X"), capped.Assignments[0].TargetPlantID)
	assert.False(t, capped.Assignments[0].IsTransfer)
	assert.Equal(t, 0.0, capped.TotalTransferCost)
	assert.Equal(t, 2000.0, capped.TotalCost)
}

func TestScenarioD_BudgetBelowHomeFixedCostIsInfeasible(t *testing.T) {
	// the fixed cost of the current plant also counts against the budget
	budget := 400.0
	result := generate(t, entities.TransferPlanConfig{BudgetCapital: &budget},
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 20, 1000), testhelpers.Plant("Y", 150, 5, 500)},
	)
	assert.False(t, result.Feasible)
	assert.Equal(t, []string{DiagnosticInfeasible}, result.ConstraintsViolated)
}

func TestScenarioE_BalanceUtilization(t *testing.T) {
	for _, fractional := range []bool{false, true} {
		result := generate(t, entities.TransferPlanConfig{
			ObjectiveFunction:         entities.BalanceUtilization,
			AllowFractionalAssignment: fractional,
		},
			[]*entities.Product{testhelpers.Product("P1", 200, "A")},
			[]*entities.Plant{testhelpers.Plant("A", 200, 10, 100), testhelpers.Plant("B", 200, 10, 100)},
		)

		require.True(t, result.Feasible, "fractional=%v", fractional)
		require.Len(t, result.Assignments, 2, "fractional=%v", fractional)
		assert.InDelta(t, result.Assignments[0].Utilization, result.Assignments[1].Utilization, 0.01)
		assert.InDelta(t, 100.0, result.Assignments[0].AssignedVolume, 0.01)
		assert.InDelta(t, 50.0, result.AverageUtilization, 0.01)
		assert.Equal(t, entities.BalanceUtilization, result.ObjectiveFunction)
	}
}

func TestFractionalMode_ProratesTransferCost(t *testing.T) {
	result := generate(t, entities.TransferPlanConfig{AllowFractionalAssignment: true},
		[]*entities.Product{testhelpers.Product("P1", 100, "X"), testhelpers.Product("P2", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 10, 0), testhelpers.Plant("Y", 150, 20, 1000)},
	)

	require.True(t, result.Feasible)
	var atX, atY float64
	for _, a := range result.Assignments {
		switch a.TargetPlantID {
		case "X":
			atX += a.AssignedVolume
			assert.Equal(t, 100.0, a.Utilization)
			assert.Zero(t, a.TransferCost)
		case "Y":
			atY += a.AssignedVolume
			assert.Equal(t, 33.33, a.Utilization)
			assert.InDelta(t, 1000*a.AssignedVolume/100, a.TransferCost, 0.01)
		}
	}
	assert.InDelta(t, 150.0, atX, 0.01)
	assert.InDelta(t, 50.0, atY, 0.01)
	assert.Equal(t, 500.0, result.TotalTransferCost)
	assert.Equal(t, 2500.0, result.TotalMonthlyCost)
	assert.Equal(t, 3000.0, result.TotalCost)
	assert.Equal(t, 66.67, result.AverageUtilization)
	assert.Equal(t, entities.FractionalAssignment, result.Mode)
}

func TestFallbackObjective_IgnoresFixedCost(t *testing.T) {
	products := []*entities.Product{testhelpers.Product("P1", 100, "X")}
	plants := []*entities.Plant{testhelpers.Plant("X", 150, 20, 0), testhelpers.Plant("Y", 150, 10, 100000)}

	cost := generate(t, entities.DefaultTransferPlanConfig(), products, plants)
	require.Len(t, cost.Assignments, 1)
	assert.Equal(t, entities.PlantID("X"), cost.Assignments[0].TargetPlantID)

	for _, objective := range []entities.ObjectiveFunction{entities.MinimizeTime, entities.MultiObjective} {
		result := generate(t, entities.TransferPlanConfig{ObjectiveFunction: objective}, products, plants)
		require.True(t, result.Feasible)
		require.Len(t, result.Assignments, 1)
		assert.Equal(t, entities.PlantID("Y"), result.Assignments[0].TargetPlantID)
		assert.Equal(t, 100000.0, result.Assignments[0].TransferCost)
		assert.Equal(t, objective, result.ObjectiveFunction)
	}
}

func TestStartMonthTruncatesLeadTime(t *testing.T) {
	result := generate(t, entities.DefaultTransferPlanConfig(),
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.WithLeadTime(testhelpers.Plant("X", 150, 10, 0), 3.9)},
	)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, 3, result.Assignments[0].StartMonth)
}

func TestProductWithUnknownCurrentPlantIsTransferred(t *testing.T) {
	result := generate(t, entities.DefaultTransferPlanConfig(),
		[]*entities.Product{testhelpers.Product("P1", 100, "CLOSED")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 10, 700)},
	)
	require.Len(t, result.Assignments, 1)
	assert.True(t, result.Assignments[0].IsTransfer)
	assert.Equal(t, 700.0, result.Assignments[0].TransferCost)
}

func TestValidationErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		products []*entities.Product
		plants   []*entities.Plant
		message  string
	}{
		{"no products", nil, []*entities.Plant{testhelpers.Plant("X", 1, 1, 1)}, services.MsgNoProducts},
		{"no plants", []*entities.Product{testhelpers.Product("P", 1, "X")}, nil, services.MsgNoPlants},
		{
			"unassigned products",
			[]*entities.Product{testhelpers.Product("A", 1, ""), testhelpers.Product("B", 1, "X"), testhelpers.Product("C", 1, "")},
			[]*entities.Plant{testhelpers.Plant("X", 10, 1, 1)},
			"The following products must be assigned to a current plant before optimization: A, C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo, plantRepo := testhelpers.BuildCatalog(tt.products, tt.plants)
			result, err := svc.GenerateTransferPlan(ctx, entities.DefaultTransferPlanConfig(), productRepo, plantRepo)
			assert.Nil(t, result)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.message, validationErr.Error())
		})
	}

	negative := -5.0
	_, err := svc.Optimize(ctx, entities.TransferPlanConfig{BudgetCapital: &negative},
		[]*entities.Product{testhelpers.Product("P", 1, "X")}, []*entities.Plant{testhelpers.Plant("X", 10, 1, 1)})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

// stubSolver rewrites the outcome of the real solver
type stubSolver struct {
	status       lp.Status
	dropSolution bool
	err          error
}

func (s stubSolver) Solve(ctx context.Context, model *lp.Model, opts lp.Options) (*lp.Outcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	out, err := simplex.New().Solve(ctx, model, opts)
	if err != nil {
		return nil, err
	}
	out.Status = s.status
	if s.dropSolution {
		out.HasSolution = false
		out.Values = nil
	}
	return out, nil
}

func TestSolverOutcomes(t *testing.T) {
	products := []*entities.Product{testhelpers.Product("P1", 100, "X")}
	plants := []*entities.Plant{testhelpers.Plant("X", 150, 10, 0)}

	tests := []struct {
		name        string
		solver      lp.Solver
		feasible    bool
		assignments int
		diagnostics []string
	}{
		{"timeout with incumbent", stubSolver{status: lp.NotSolved}, true, 1, []string{DiagnosticTimeoutSuboptimal}},
		{"timeout without incumbent", stubSolver{status: lp.NotSolved, dropSolution: true}, false, 0, []string{DiagnosticTimeoutNoResult}},
		{"unbounded", stubSolver{status: lp.Unbounded, dropSolution: true}, false, 0, []string{DiagnosticUnbounded}},
		{"infeasible", stubSolver{status: lp.Infeasible, dropSolution: true}, false, 0, []string{DiagnosticInfeasible}},
		{"backend failure", stubSolver{err: errors.New("lp: A is singular")}, false, 0, []string{"Solver status: lp: A is singular"}},
		{"optimal without values", stubSolver{status: lp.Optimal, dropSolution: true}, true, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTransferPlanServiceWithConfig(DefaultEngineConfig(), tt.solver)
			result, err := svc.Optimize(context.Background(), entities.DefaultTransferPlanConfig(), products, plants)
			require.NoError(t, err)
			assert.Equal(t, tt.feasible, result.Feasible)
			assert.Len(t, result.Assignments, tt.assignments)
			assert.Equal(t, tt.diagnostics, result.ConstraintsViolated)
			if !tt.feasible {
				assert.Zero(t, result.TotalCost)
				assert.Zero(t, result.TotalTransferCost)
				assert.Zero(t, result.TotalMonthlyCost)
			}
		})
	}
}

func assertPlanInvariants(t *testing.T, result *entities.TransferPlanResult, products []*entities.Product, plants []*entities.Plant) {
	t.Helper()

	byProduct := make(map[entities.ProductID]float64)
	byPlant := make(map[entities.PlantID]decimal.Decimal)
	for _, a := range result.Assignments {
		byProduct[a.ProductID] += a.AssignedVolume
		byPlant[a.TargetPlantID] = byPlant[a.TargetPlantID].Add(decimal.NewFromFloat(a.AssignedVolume))

		for _, v := range []float64{a.AssignedVolume, a.Utilization, a.TransferCost, a.MonthlyProductionCost, a.TotalCost} {
			assert.GreaterOrEqual(t, v, 0.0)
			assertTwoDecimals(t, v)
		}
	}
	for _, v := range []float64{result.TotalTransferCost, result.TotalMonthlyCost, result.TotalCost, result.AverageUtilization} {
		assert.GreaterOrEqual(t, v, 0.0)
		assertTwoDecimals(t, v)
	}

	for _, p := range products {
		assert.InDelta(t, p.MonthlyDemand, byProduct[p.ProductID], 0.01*float64(len(plants)), "demand of %s", p.ProductID)
	}
	for _, p := range plants {
		limit := decimal.NewFromFloat(p.EffectiveCapacity())
		assert.True(t, byPlant[p.PlantID].LessThanOrEqual(limit), "plant %s over capacity: %s > %s", p.PlantID, byPlant[p.PlantID], limit)
	}
}

func assertTwoDecimals(t *testing.T, v float64) {
	t.Helper()
	assert.InDelta(t, math.Round(v*100)/100, v, 1e-9, "%v is not rounded to 2 decimals", v)
}

func TestExampleData_FractionalPlanHoldsInvariants(t *testing.T) {
	productRepo, plantRepo := testhelpers.BuildAutomotiveTestData()
	ctx := context.Background()
	products, _ := productRepo.ListProducts(ctx)
	plants, _ := plantRepo.ListPlants(ctx)

	result, err := newTestService().GenerateTransferPlan(ctx, entities.TransferPlanConfig{AllowFractionalAssignment: true}, productRepo, plantRepo)
	require.NoError(t, err)
	require.True(t, result.Feasible, "diagnostics: %v", result.ConstraintsViolated)
	assertPlanInvariants(t, result, products, plants)
}

func TestExampleData_BinaryPlanHoldsInvariants(t *testing.T) {
	productRepo, plantRepo := testhelpers.BuildAutomotiveTestData()
	ctx := context.Background()
	products, _ := productRepo.ListProducts(ctx)
	plants, _ := plantRepo.ListPlants(ctx)

	result, err := newTestService().GenerateTransferPlan(ctx, entities.DefaultTransferPlanConfig(), productRepo, plantRepo)
	require.NoError(t, err)
	require.True(t, result.Feasible, "diagnostics: %v", result.ConstraintsViolated)
	assertPlanInvariants(t, result, products, plants)
	assert.Less(t, result.OptimizationTimeSeconds, 10.0)
}

func TestExampleData_ExcludedPlantMakesDemandExceedCapacity(t *testing.T) {
	productRepo, plantRepo := testhelpers.BuildAutomotiveTestData()

	// the remaining three plants offer 298,900 units against 336,000 of demand
	result, err := newTestService().GenerateTransferPlan(context.Background(), entities.TransferPlanConfig{
		AllowFractionalAssignment: true,
		ExcludedPlants:            []entities.PlantID{"PLANT-US-MICHIGAN"},
	}, productRepo, plantRepo)
	require.NoError(t, err)
	assert.False(t, result.Feasible)
	assert.Contains(t, result.ConstraintsViolated, DiagnosticInfeasible)
}

func TestExclusions(t *testing.T) {
	products := []*entities.Product{
		testhelpers.Product("KEEP", 100, "EXPENSIVE"),
		testhelpers.Product("MOVE", 100, "EXPENSIVE"),
	}
	plants := []*entities.Plant{
		testhelpers.Plant("EXPENSIVE", 300, 50, 0),
		testhelpers.Plant("CHEAP", 300, 1, 0),
		testhelpers.Plant("CLOSED", 300, 0.5, 0),
	}
	config := entities.TransferPlanConfig{
		AllowFractionalAssignment: true,
		ExcludedProducts:          []entities.ProductID{"KEEP"},
		ExcludedPlants:            []entities.PlantID{"CLOSED"},
	}

	result := generate(t, config, products, plants)
	require.True(t, result.Feasible)
	assertPlanInvariants(t, result, products, plants)

	for _, a := range result.Assignments {
		assert.NotEqual(t, entities.PlantID("CLOSED"), a.TargetPlantID)
		if a.ProductID == "KEEP" {
			assert.Equal(t, entities.PlantID("EXPENSIVE"), a.TargetPlantID)
		}
		if a.ProductID == "MOVE" {
			assert.Equal(t, entities.PlantID("CHEAP"), a.TargetPlantID)
		}
	}
}

func TestExcludedProductWithoutHomeIsInfeasible(t *testing.T) {
	result := generate(t, entities.TransferPlanConfig{
		ExcludedProducts: []entities.ProductID{"P1"},
		ExcludedPlants:   []entities.PlantID{"X"},
	},
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 10, 0), testhelpers.Plant("Y", 150, 10, 0)},
	)
	assert.False(t, result.Feasible)
	assert.Empty(t, result.Assignments)
	assert.Len(t, result.ConstraintsViolated, 2)
	assert.Contains(t, result.ConstraintsViolated, DiagnosticInfeasible)
}

func TestUnplaceableProductDoesNotBlockTheRest(t *testing.T) {
	products := []*entities.Product{
		testhelpers.Product("BIG", 1000, "X"),
		testhelpers.Product("P1", 100, "X"),
	}
	plants := []*entities.Plant{testhelpers.Plant("X", 150, 10, 500)}

	result := generate(t, entities.DefaultTransferPlanConfig(), products, plants)

	require.True(t, result.Feasible, "diagnostics: %v", result.ConstraintsViolated)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, entities.ProductID("P1"), result.Assignments[0].ProductID)
	assert.Equal(t, entities.PlantID("X"), result.Assignments[0].TargetPlantID)
	assert.Equal(t, 100.0, result.Assignments[0].AssignedVolume)
	assert.Equal(t, 1000.0, result.TotalCost)
	assert.Equal(t, "Optimal", result.SolverStatus)
	assert.Equal(t, []string{
		"Product BIG: monthly demand exceeds the effective capacity of every eligible plant",
	}, result.ConstraintsViolated)
	assertPlanInvariants(t, result, products[1:], plants)
}

func TestStrandedProductDoesNotBlockTheRest(t *testing.T) {
	products := []*entities.Product{
		testhelpers.Product("KEEP", 100, "CLOSED"),
		testhelpers.Product("MOVE", 100, "CLOSED"),
	}
	plants := []*entities.Plant{
		testhelpers.Plant("CLOSED", 300, 10, 0),
		testhelpers.Plant("OPEN", 300, 10, 0),
	}

	result := generate(t, entities.TransferPlanConfig{
		AllowFractionalAssignment: true,
		ExcludedProducts:          []entities.ProductID{"KEEP"},
		ExcludedPlants:            []entities.PlantID{"CLOSED"},
	}, products, plants)

	require.True(t, result.Feasible)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, entities.ProductID("MOVE"), result.Assignments[0].ProductID)
	assert.Equal(t, entities.PlantID("OPEN"), result.Assignments[0].TargetPlantID)
	require.Len(t, result.ConstraintsViolated, 1)
	assert.Contains(t, result.ConstraintsViolated[0], "Product KEEP")
}

func TestZeroBudgetIsNoCap(t *testing.T) {
	zero := 0.0
	home := generate(t, entities.TransferPlanConfig{BudgetCapital: &zero},
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 10, 500)},
	)
	require.True(t, home.Feasible, "diagnostics: %v", home.ConstraintsViolated)
	require.Len(t, home.Assignments, 1)
	assert.Equal(t, entities.PlantID("X"), home.Assignments[0].TargetPlantID)
	assert.Equal(t, 100.0, home.Assignments[0].AssignedVolume)
	assert.Empty(t, home.ConstraintsViolated)

	moved := generate(t, entities.TransferPlanConfig{BudgetCapital: &zero},
		[]*entities.Product{testhelpers.Product("P1", 100, "X")},
		[]*entities.Plant{testhelpers.Plant("X", 150, 20, 0), testhelpers.Plant("Y", 150, 5, 500)},
	)
	require.True(t, moved.Feasible)
	require.Len(t, moved.Assignments, 1)
	assert.Equal(t, entities.PlantID("Y"), moved.Assignments[0].TargetPlantID)
	assert.Equal(t, 500.0, moved.TotalTransferCost)
}

// spareCapacityGrid spreads n products over m plants whose combined effective
// capacity is 1.3 times the total demand
func spareCapacityGrid(n, m int) ([]*entities.Product, []*entities.Plant) {
	products := make([]*entities.Product, n)
	total := 0.0
	for i := range products {
		demand := float64(100 + 37*(i%7) + 11*i)
		total += demand
		products[i] = testhelpers.Product(fmt.Sprintf("P%03d", i), demand, fmt.Sprintf("PLANT_%d", i%m))
	}
	plants := make([]*entities.Plant, m)
	for j := range plants {
		plants[j] = testhelpers.Plant(fmt.Sprintf("PLANT_%d", j), math.Ceil(1.3*total/float64(m)),
			10+1.5*float64(j), float64(2000+750*((3*j)%m)))
	}
	return products, plants
}

func TestBinaryGrid_SolvesToOptimalityWithinLimit(t *testing.T) {
	products, plants := spareCapacityGrid(30, 5)
	svc := NewTransferPlanServiceWithConfig(DefaultEngineConfig(), simplex.New())

	start := time.Now()
	result, err := svc.Optimize(context.Background(), entities.DefaultTransferPlanConfig(), products, plants)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), DefaultTimeLimit)
	require.True(t, result.Feasible, "diagnostics: %v", result.ConstraintsViolated)
	assert.Equal(t, "Optimal", result.SolverStatus)
	assert.Empty(t, result.ConstraintsViolated)
	assertPlanInvariants(t, result, products, plants)
}

func TestSnapshotErrorsAreWrapped(t *testing.T) {
	plantRepo := memory.NewPlantRepository(0)
	_, err := newTestService().GenerateTransferPlan(context.Background(), entities.DefaultTransferPlanConfig(), failingProducts{}, plantRepo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read product catalog")
}

type failingProducts struct {
	*memory.ProductRepository
}

func (failingProducts) ListProducts(context.Context) ([]*entities.Product, error) {
	return nil, errors.New("connection refused")
}
