// Package optimization recommends where products should be produced: it
// filters feasible product-plant pairs, builds an assignment model, solves it
// and reports a costed plan.
package optimization

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/domain/services"
	"github.com/vsinha/transferplan/pkg/lp"
	"github.com/vsinha/transferplan/pkg/lp/simplex"
)

const (
	DefaultTimeLimit   = 10 * time.Second
	DefaultRelativeGap = 0.01
)

// EngineConfig holds the solver policy for optimization runs
type EngineConfig struct {
	TimeLimit   time.Duration
	RelativeGap float64
}

// DefaultEngineConfig returns a 10 second limit with a 1% optimality gap
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{TimeLimit: DefaultTimeLimit, RelativeGap: DefaultRelativeGap}
}

// ValidationError reports catalog preconditions that block an optimization run
type ValidationError struct {
	Messages           []string
	UnassignedProducts []entities.ProductID
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// TransferPlanService runs transfer plan optimizations
type TransferPlanService struct {
	config    EngineConfig
	solver    lp.Solver
	validator *services.CatalogValidator
}

// NewTransferPlanService creates a service backed by the bundled simplex solver
func NewTransferPlanService() *TransferPlanService {
	return NewTransferPlanServiceWithConfig(DefaultEngineConfig(), simplex.New())
}

// NewTransferPlanServiceWithConfig creates a service with a custom policy and solver
func NewTransferPlanServiceWithConfig(config EngineConfig, solver lp.Solver) *TransferPlanService {
	if config.TimeLimit <= 0 {
		config.TimeLimit = DefaultTimeLimit
	}
	if config.RelativeGap < 0 {
		config.RelativeGap = DefaultRelativeGap
	}
	return &TransferPlanService{
		config:    config,
		solver:    solver,
		validator: services.NewCatalogValidator(),
	}
}

// GenerateTransferPlan snapshots the catalogs and optimizes them. Precondition
// failures return a *ValidationError; solver outcomes, including infeasibility,
// are reported on the result.
func (s *TransferPlanService) GenerateTransferPlan(
	ctx context.Context,
	config entities.TransferPlanConfig,
	productRepo repositories.ProductRepository,
	plantRepo repositories.PlantRepository,
) (*entities.TransferPlanResult, error) {
	products, err := productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read product catalog: %w", err)
	}
	plants, err := plantRepo.ListPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plant catalog: %w", err)
	}
	return s.Optimize(ctx, config, products, plants)
}

// Optimize runs the optimization over explicit catalog snapshots
func (s *TransferPlanService) Optimize(
	ctx context.Context,
	config entities.TransferPlanConfig,
	products []*entities.Product,
	plants []*entities.Plant,
) (*entities.TransferPlanResult, error) {
	if err := config.Validate(); err != nil {
		return nil, &ValidationError{Messages: []string{err.Error()}}
	}

	validation := s.validator.ValidateForOptimization(products, plants)
	if !validation.Valid() {
		return nil, &ValidationError{
			Messages:           validation.Errors,
			UnassignedProducts: validation.UnassignedProducts,
		}
	}

	objective := config.Objective()
	if objective != entities.MinimizeCost && objective != entities.BalanceUtilization {
		log.Warn().
			Str("objective", string(objective)).
			Msg("objective has no dedicated model, minimizing production cost")
	}

	start := time.Now()
	result := &entities.TransferPlanResult{
		RunID:               uuid.NewString(),
		ObjectiveFunction:   objective,
		Mode:                config.Mode(),
		Assignments:         []entities.TransferAssignment{},
		ConstraintsViolated: []string{},
	}

	// Pass 1: Reduce products × plants to feasible pairs
	feasibility := FilterFeasiblePairs(products, plants, config)
	log.Debug().
		Str("run_id", result.RunID).
		Int("candidates", len(products)*len(plants)).
		Int("pairs", len(feasibility.Pairs)).
		Msg("feasibility filter applied")

	// Products without a pair get no rows; the rest of the catalog is still planned
	for _, id := range feasibility.Unplaceable {
		result.ConstraintsViolated = append(result.ConstraintsViolated,
			fmt.Sprintf("Product %s: monthly demand exceeds the effective capacity of every eligible plant", id))
	}
	for _, id := range feasibility.Stranded {
		result.ConstraintsViolated = append(result.ConstraintsViolated,
			fmt.Sprintf("Product %s: excluded from transfer but its current plant is unavailable or too small", id))
	}
	if feasibility.Skipped() > 0 {
		log.Info().
			Str("run_id", result.RunID).
			Strs("unplaceable", productIDs(feasibility.Unplaceable)).
			Strs("stranded", productIDs(feasibility.Stranded)).
			Msg("products cannot be placed at any plant, planning the rest")
	}

	if len(feasibility.Pairs) == 0 {
		result.ConstraintsViolated = append(result.ConstraintsViolated, DiagnosticInfeasible)
		result.SolverStatus = lp.Infeasible.String()
		result.OptimizationTimeSeconds = elapsedSeconds(start)
		log.Info().Str("run_id", result.RunID).Msg("no feasible product-plant pairs, skipping solve")
		return result, nil
	}

	// Pass 2: Build the model
	problem := BuildProblem(feasibility, plants, config)

	// Pass 3: Solve within the time limit
	outcome, solveErr := s.solver.Solve(ctx, problem.Model, lp.Options{
		TimeLimit:   s.config.TimeLimit,
		RelativeGap: s.config.RelativeGap,
	})
	if solveErr == nil && outcome == nil {
		solveErr = fmt.Errorf("solver returned no outcome")
	}

	// Pass 4: Extract the plan
	extract(problem, outcome, solveErr, result)
	result.OptimizationTimeSeconds = elapsedSeconds(start)

	event := log.Info()
	if outcome != nil && outcome.Status == lp.Unbounded {
		event = log.Warn()
	}
	if solveErr != nil {
		event = log.Error().Err(solveErr)
	}
	event.
		Str("run_id", result.RunID).
		Str("status", result.SolverStatus).
		Str("mode", result.Mode.String()).
		Int("assignments", len(result.Assignments)).
		Float64("optimization_time_seconds", result.OptimizationTimeSeconds).
		Msg("transfer plan optimized")

	return result, nil
}

func elapsedSeconds(start time.Time) float64 {
	f, _ := decimal.NewFromFloat(time.Since(start).Seconds()).Round(3).Float64()
	return f
}

func productIDs(ids []entities.ProductID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
