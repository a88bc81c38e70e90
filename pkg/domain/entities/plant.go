package entities

import "fmt"

// PlantID is the unique identifier of a manufacturing plant
type PlantID string

// DefaultMaxUtilizationTarget is applied when a plant does not declare one
const DefaultMaxUtilizationTarget = 90.0

// Plant represents a manufacturing plant that can receive production volume
type Plant struct {
	ID                 int      `json:"id"`
	PlantID            PlantID  `json:"plant_id"`
	AvailableCapacity  float64  `json:"available_capacity"`
	UnitProductionCost float64  `json:"unit_production_cost"`
	TransferFixedCost  float64  `json:"transfer_fixed_cost"`
	EffectiveOEE       *float64 `json:"effective_oee,omitempty"`
	LeadTimeToStart    float64  `json:"lead_time_to_start"`

	AvailableAreaM2                *float64 `json:"available_area_m2,omitempty"`
	AreaRequiredPerProductM2       *float64 `json:"area_required_per_product_m2,omitempty"`
	LaborSkillLevel                *string  `json:"labor_skill_level,omitempty"`
	TrainingDaysRequired           *int     `json:"training_days_required,omitempty"`
	WarehouseCapacityPallets       *float64 `json:"warehouse_capacity_pallets,omitempty"`
	PalletsPerUnit                 *float64 `json:"pallets_per_unit,omitempty"`
	InterplantTransportCostPerUnit *float64 `json:"interplant_transport_cost_per_unit,omitempty"`
	LeadTimeDays                   *int     `json:"lead_time_days,omitempty"`
	MaxUtilizationTarget           float64  `json:"max_utilization_target"`
	SetupTimeHours                 *float64 `json:"setup_time_hours,omitempty"`
	ChangeoverCost                 *float64 `json:"changeover_cost,omitempty"`
	RiskScore                      *float64 `json:"risk_score,omitempty"`
	ProbabilityOfDelay             *float64 `json:"probability_of_delay,omitempty"`
	DelayCostPerDay                *float64 `json:"delay_cost_per_day,omitempty"`
}

// NewPlant creates a validated Plant. A nil oee means the plant runs at full effectiveness.
func NewPlant(plantID PlantID, availableCapacity, unitProductionCost, transferFixedCost float64, oee *float64, leadTimeToStart float64) (*Plant, error) {
	p := &Plant{
		PlantID:              plantID,
		AvailableCapacity:    availableCapacity,
		UnitProductionCost:   unitProductionCost,
		TransferFixedCost:    transferFixedCost,
		EffectiveOEE:         oee,
		LeadTimeToStart:      leadTimeToStart,
		MaxUtilizationTarget: DefaultMaxUtilizationTarget,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the fields the optimizer depends on
func (p *Plant) Validate() error {
	if p.PlantID == "" {
		return fmt.Errorf("plant id cannot be empty")
	}
	if p.AvailableCapacity <= 0 {
		return fmt.Errorf("available capacity must be positive, got %g", p.AvailableCapacity)
	}
	if p.UnitProductionCost < 0 {
		return fmt.Errorf("unit production cost cannot be negative, got %g", p.UnitProductionCost)
	}
	if p.TransferFixedCost < 0 {
		return fmt.Errorf("transfer fixed cost cannot be negative, got %g", p.TransferFixedCost)
	}
	if p.EffectiveOEE != nil && (*p.EffectiveOEE < 0 || *p.EffectiveOEE > 1) {
		return fmt.Errorf("effective OEE must be within [0, 1], got %g", *p.EffectiveOEE)
	}
	if p.LeadTimeToStart < 0 {
		return fmt.Errorf("lead time to start cannot be negative, got %g", p.LeadTimeToStart)
	}
	if p.MaxUtilizationTarget < 0 || p.MaxUtilizationTarget > 100 {
		return fmt.Errorf("max utilization target must be within [0, 100], got %g", p.MaxUtilizationTarget)
	}
	return nil
}

// OEE returns the effective OEE, 1.0 when the plant does not declare one
func (p *Plant) OEE() float64 {
	if p.EffectiveOEE == nil {
		return 1.0
	}
	return *p.EffectiveOEE
}

// EffectiveCapacity is the available capacity scaled by OEE
func (p *Plant) EffectiveCapacity() float64 {
	return p.AvailableCapacity * p.OEE()
}

// StartMonth is the whole number of months before the plant can start producing
func (p *Plant) StartMonth() int {
	return int(p.LeadTimeToStart)
}
