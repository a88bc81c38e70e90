package entities

import (
	"fmt"
	"time"
)

// ObjectiveFunction selects what the transfer plan optimizer minimizes
type ObjectiveFunction string

const (
	MinimizeCost       ObjectiveFunction = "minimize_cost"
	MinimizeTime       ObjectiveFunction = "minimize_time"
	BalanceUtilization ObjectiveFunction = "balance_utilization"
	MultiObjective     ObjectiveFunction = "multi_objective"
)

// IsDeclared reports whether the objective is one of the documented values
func (o ObjectiveFunction) IsDeclared() bool {
	switch o {
	case MinimizeCost, MinimizeTime, BalanceUtilization, MultiObjective:
		return true
	default:
		return false
	}
}

// ProblemName is the model name used for the objective
func (o ObjectiveFunction) ProblemName() string {
	switch o {
	case MinimizeCost:
		return "Transfer_Plan_Cost_Minimization"
	case BalanceUtilization:
		return "Transfer_Plan_Utilization_Balance"
	default:
		return "Transfer_Plan_Optimization"
	}
}

// AssignmentMode describes how volume may be split across plants
type AssignmentMode int

const (
	// BinaryAssignment makes an all-or-nothing decision per product-plant pair
	BinaryAssignment AssignmentMode = iota
	// FractionalAssignment lets volume split continuously across plants
	FractionalAssignment
)

// String method for AssignmentMode enum
func (m AssignmentMode) String() string {
	switch m {
	case BinaryAssignment:
		return "binary"
	case FractionalAssignment:
		return "fractional"
	default:
		return "unknown"
	}
}

// MarshalText renders the mode by name
func (m AssignmentMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name
func (m *AssignmentMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "binary":
		*m = BinaryAssignment
	case "fractional":
		*m = FractionalAssignment
	default:
		return fmt.Errorf("unknown assignment mode %q", text)
	}
	return nil
}

// TransferPlanConfig controls a single optimization run
type TransferPlanConfig struct {
	ObjectiveFunction         ObjectiveFunction `json:"objective_function"`
	AllowFractionalAssignment bool              `json:"allow_fractional_assignment"`
	BudgetCapital             *float64          `json:"budget_capital,omitempty"`
	ExcludedProducts          []ProductID       `json:"excluded_products"`
	ExcludedPlants            []PlantID         `json:"excluded_plants"`

	// Accepted for compatibility; no constraint is derived from them.
	TransferDeadline *time.Time `json:"transfer_deadline,omitempty"`
	DiscountRate     *float64   `json:"discount_rate,omitempty"`
}

// DefaultTransferPlanConfig returns the cost-minimizing, binary configuration
func DefaultTransferPlanConfig() TransferPlanConfig {
	return TransferPlanConfig{ObjectiveFunction: MinimizeCost}
}

// Mode returns the assignment mode selected by the config
func (c TransferPlanConfig) Mode() AssignmentMode {
	if c.AllowFractionalAssignment {
		return FractionalAssignment
	}
	return BinaryAssignment
}

// Objective returns the selected objective, minimize_cost when unset
func (c TransferPlanConfig) Objective() ObjectiveFunction {
	if c.ObjectiveFunction == "" {
		return MinimizeCost
	}
	return c.ObjectiveFunction
}

// Validate checks ranges that do not depend on the catalogs
func (c TransferPlanConfig) Validate() error {
	if c.BudgetCapital != nil && *c.BudgetCapital < 0 {
		return fmt.Errorf("budget capital cannot be negative, got %g", *c.BudgetCapital)
	}
	if c.DiscountRate != nil && (*c.DiscountRate < 0 || *c.DiscountRate > 1) {
		return fmt.Errorf("discount rate must be within [0, 1], got %g", *c.DiscountRate)
	}
	return nil
}

// BudgetCap returns the budget to enforce. An unset or zero budget_capital
// means no cap.
func (c TransferPlanConfig) BudgetCap() (float64, bool) {
	if c.BudgetCapital == nil || *c.BudgetCapital == 0 {
		return 0, false
	}
	return *c.BudgetCapital, true
}

// ExcludedProductSet indexes the excluded products
func (c TransferPlanConfig) ExcludedProductSet() map[ProductID]struct{} {
	set := make(map[ProductID]struct{}, len(c.ExcludedProducts))
	for _, id := range c.ExcludedProducts {
		set[id] = struct{}{}
	}
	return set
}

// ExcludedPlantSet indexes the excluded plants
func (c TransferPlanConfig) ExcludedPlantSet() map[PlantID]struct{} {
	set := make(map[PlantID]struct{}, len(c.ExcludedPlants))
	for _, id := range c.ExcludedPlants {
		set[id] = struct{}{}
	}
	return set
}

// TransferAssignment is one product-to-plant volume recommendation
type TransferAssignment struct {
	ProductID             ProductID `json:"product_id"`
	SourcePlantID         *PlantID  `json:"source_plant_id"`
	TargetPlantID         PlantID   `json:"target_plant_id"`
	AssignedVolume        float64   `json:"assigned_volume"`
	Utilization           float64   `json:"utilization"`
	IsTransfer            bool      `json:"is_transfer"`
	TotalCost             float64   `json:"total_cost"`
	TransferCost          float64   `json:"transfer_cost"`
	MonthlyProductionCost float64   `json:"monthly_production_cost"`
	StartMonth            int       `json:"start_month"`
}

// TransferPlanResult is the outcome of an optimization run
type TransferPlanResult struct {
	RunID                   string               `json:"run_id"`
	ObjectiveFunction       ObjectiveFunction    `json:"objective_function"`
	Mode                    AssignmentMode       `json:"mode"`
	Assignments             []TransferAssignment `json:"assignments"`
	TotalTransferCost       float64              `json:"total_transfer_cost"`
	TotalMonthlyCost        float64              `json:"total_monthly_cost"`
	TotalCost               float64              `json:"total_cost"`
	AverageUtilization      float64              `json:"average_utilization"`
	Feasible                bool                 `json:"feasible"`
	ConstraintsViolated     []string             `json:"constraints_violated"`
	OptimizationTimeSeconds float64              `json:"optimization_time_seconds"`
	SolverStatus            string               `json:"solver_status"`
}
