package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	testhelpers "github.com/vsinha/transferplan/pkg/infrastructure/testing"
	"github.com/vsinha/transferplan/pkg/lp"
)

// thirds fills plant X exactly with three volumes whose rounded sum is 100.01
func thirds() *Problem {
	products := []*entities.Product{
		testhelpers.Product("A", 33.335, "X"),
		testhelpers.Product("B", 33.335, "X"),
		testhelpers.Product("C", 33.33, "X"),
	}
	plants := []*entities.Plant{testhelpers.Plant("X", 100, 10, 0)}
	return buildFor(products, plants, entities.TransferPlanConfig{AllowFractionalAssignment: true})
}

func TestTrimToCapacity(t *testing.T) {
	problem := thirds()
	planned := []plannedVolume{{pair: 0, volume: 33.335}, {pair: 1, volume: 33.335}, {pair: 2, volume: 33.33}}

	trimToCapacity(problem, planned)

	assert.Equal(t, 33.33, planned[0].volume, "largest volume loses a cent")
	assert.Equal(t, 33.335, planned[1].volume)
	assert.Equal(t, 33.33, planned[2].volume)
}

func TestTrimToCapacity_WithinCapacityUntouched(t *testing.T) {
	problem := thirds()
	planned := []plannedVolume{{pair: 0, volume: 33.33}, {pair: 1, volume: 33.33}, {pair: 2, volume: 33.33}}

	trimToCapacity(problem, planned)

	for _, p := range planned {
		assert.Equal(t, 33.33, p.volume)
	}
}

func TestExtract_TrimmedAssignmentCostsFollowVolume(t *testing.T) {
	problem := thirds()
	values := make([]float64, len(problem.Model.Vars))
	values[problem.vars[0].volume] = 33.335
	values[problem.vars[1].volume] = 33.335
	values[problem.vars[2].volume] = 33.33

	result := &entities.TransferPlanResult{}
	extract(problem, &lp.Outcome{Status: lp.Optimal, HasSolution: true, Values: values}, nil, result)

	require.True(t, result.Feasible)
	require.Len(t, result.Assignments, 3)

	total := 0.0
	for _, a := range result.Assignments {
		total += a.AssignedVolume
		assert.InDelta(t, a.AssignedVolume*10, a.MonthlyProductionCost, 0.01, "production cost of %s", a.ProductID)
		assert.InDelta(t, a.TransferCost+a.MonthlyProductionCost, a.TotalCost, 0.01)
	}
	assert.InDelta(t, 100.0, total, 1e-9)

	trimmed := result.Assignments[0]
	assert.Equal(t, 33.33, trimmed.AssignedVolume)
	assert.InDelta(t, 333.3, trimmed.MonthlyProductionCost, 1e-9)
	assert.InDelta(t, 333.3, trimmed.TotalCost, 1e-9)
}
