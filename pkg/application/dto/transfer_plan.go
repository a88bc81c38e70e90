package dto

import (
	"time"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// TransferPlanRequest is the body of a plan generation request
type TransferPlanRequest struct {
	ObjectiveFunction         string     `json:"objective_function" validate:"omitempty,oneof=minimize_cost minimize_time balance_utilization multi_objective"`
	AllowFractionalAssignment bool       `json:"allow_fractional_assignment"`
	BudgetCapital             *float64   `json:"budget_capital" validate:"omitempty,gte=0"`
	ExcludedProducts          []string   `json:"excluded_products"`
	ExcludedPlants            []string   `json:"excluded_plants"`
	TransferDeadline          *time.Time `json:"transfer_deadline"`
	DiscountRate              *float64   `json:"discount_rate" validate:"omitempty,gte=0,lte=1"`
}

// ToConfig converts the request into an engine configuration
func (r TransferPlanRequest) ToConfig() entities.TransferPlanConfig {
	config := entities.TransferPlanConfig{
		ObjectiveFunction:         entities.ObjectiveFunction(r.ObjectiveFunction),
		AllowFractionalAssignment: r.AllowFractionalAssignment,
		BudgetCapital:             r.BudgetCapital,
		TransferDeadline:          r.TransferDeadline,
		DiscountRate:              r.DiscountRate,
		ExcludedProducts:          make([]entities.ProductID, 0, len(r.ExcludedProducts)),
		ExcludedPlants:            make([]entities.PlantID, 0, len(r.ExcludedPlants)),
	}
	if config.ObjectiveFunction == "" {
		config.ObjectiveFunction = entities.MinimizeCost
	}
	for _, id := range r.ExcludedProducts {
		config.ExcludedProducts = append(config.ExcludedProducts, entities.ProductID(id))
	}
	for _, id := range r.ExcludedPlants {
		config.ExcludedPlants = append(config.ExcludedPlants, entities.PlantID(id))
	}
	return config
}
