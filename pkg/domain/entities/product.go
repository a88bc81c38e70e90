package entities

import "fmt"

// ProductID is the unique SKU of a product
type ProductID string

// Product represents a manufactured product and where it is made today
type Product struct {
	ID              int       `json:"id"`
	ProductID       ProductID `json:"product_id"`
	MonthlyDemand   float64   `json:"monthly_demand"`
	CurrentUnitCost float64   `json:"current_unit_cost"`
	CurrentPlantID  PlantID   `json:"current_plant_id,omitempty"`

	UnitVolumeOrWeight       *float64 `json:"unit_volume_or_weight,omitempty"`
	CycleTimeSec             *float64 `json:"cycle_time_sec,omitempty"`
	RequiredMachineType      *string  `json:"required_machine_type,omitempty"`
	YieldRate                *float64 `json:"yield_rate,omitempty"`
	SpecialComplianceFlag    bool     `json:"special_compliance_flag"`
	BatchSize                *int     `json:"batch_size,omitempty"`
	MonthlyDemandVariability *float64 `json:"monthly_demand_variability,omitempty"`
}

// NewProduct creates a validated Product
func NewProduct(productID ProductID, monthlyDemand, currentUnitCost float64, currentPlantID PlantID) (*Product, error) {
	p := &Product{
		ProductID:       productID,
		MonthlyDemand:   monthlyDemand,
		CurrentUnitCost: currentUnitCost,
		CurrentPlantID:  currentPlantID,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the fields the optimizer depends on
func (p *Product) Validate() error {
	if p.ProductID == "" {
		return fmt.Errorf("product id cannot be empty")
	}
	if p.MonthlyDemand <= 0 {
		return fmt.Errorf("monthly demand must be positive, got %g", p.MonthlyDemand)
	}
	if p.CurrentUnitCost < 0 {
		return fmt.Errorf("current unit cost cannot be negative, got %g", p.CurrentUnitCost)
	}
	if p.YieldRate != nil && (*p.YieldRate < 0 || *p.YieldRate > 100) {
		return fmt.Errorf("yield rate must be within [0, 100], got %g", *p.YieldRate)
	}
	return nil
}

// HasCurrentPlant reports whether the product is assigned to a plant today
func (p *Product) HasCurrentPlant() bool {
	return p.CurrentPlantID != ""
}
