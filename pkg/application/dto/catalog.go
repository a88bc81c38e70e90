package dto

import "github.com/vsinha/transferplan/pkg/domain/entities"

// CatalogStatus reports whether the catalogs are ready for optimization
type CatalogStatus struct {
	ProductsCount        int  `json:"products_count"`
	PlantsCount          int  `json:"plants_count"`
	ReadyForOptimization bool `json:"ready_for_optimization"`
}

// ExampleDataSummary describes a freshly loaded example catalog
type ExampleDataSummary struct {
	Message                string  `json:"message"`
	ProductsAdded          int     `json:"products_added"`
	PlantsAdded            int     `json:"plants_added"`
	TotalMonthlyDemand     float64 `json:"total_monthly_demand"`
	TotalAvailableCapacity float64 `json:"total_available_capacity"`
}

// ProductInput is the full set of product fields accepted on create
type ProductInput struct {
	ProductID                string   `json:"product_id" validate:"required,max=64"`
	MonthlyDemand            float64  `json:"monthly_demand" validate:"gt=0"`
	CurrentUnitCost          float64  `json:"current_unit_cost" validate:"gte=0"`
	CurrentPlantID           string   `json:"current_plant_id" validate:"omitempty,max=64"`
	UnitVolumeOrWeight       *float64 `json:"unit_volume_or_weight" validate:"omitempty,gte=0"`
	CycleTimeSec             *float64 `json:"cycle_time_sec" validate:"omitempty,gte=0"`
	RequiredMachineType      *string  `json:"required_machine_type"`
	YieldRate                *float64 `json:"yield_rate" validate:"omitempty,gte=0,lte=100"`
	SpecialComplianceFlag    bool     `json:"special_compliance_flag"`
	BatchSize                *int     `json:"batch_size" validate:"omitempty,gte=0"`
	MonthlyDemandVariability *float64 `json:"monthly_demand_variability" validate:"omitempty,gte=0"`
}

// ToEntity converts the input into a product without a catalog id
func (in ProductInput) ToEntity() *entities.Product {
	return &entities.Product{
		ProductID:                entities.ProductID(in.ProductID),
		MonthlyDemand:            in.MonthlyDemand,
		CurrentUnitCost:          in.CurrentUnitCost,
		CurrentPlantID:           entities.PlantID(in.CurrentPlantID),
		UnitVolumeOrWeight:       in.UnitVolumeOrWeight,
		CycleTimeSec:             in.CycleTimeSec,
		RequiredMachineType:      in.RequiredMachineType,
		YieldRate:                in.YieldRate,
		SpecialComplianceFlag:    in.SpecialComplianceFlag,
		BatchSize:                in.BatchSize,
		MonthlyDemandVariability: in.MonthlyDemandVariability,
	}
}

// ProductPatch carries the fields of a partial product update; nil means unchanged
type ProductPatch struct {
	ProductID                *string  `json:"product_id" validate:"omitempty,min=1,max=64"`
	MonthlyDemand            *float64 `json:"monthly_demand" validate:"omitempty,gt=0"`
	CurrentUnitCost          *float64 `json:"current_unit_cost" validate:"omitempty,gte=0"`
	CurrentPlantID           *string  `json:"current_plant_id" validate:"omitempty,max=64"`
	UnitVolumeOrWeight       *float64 `json:"unit_volume_or_weight" validate:"omitempty,gte=0"`
	CycleTimeSec             *float64 `json:"cycle_time_sec" validate:"omitempty,gte=0"`
	RequiredMachineType      *string  `json:"required_machine_type"`
	YieldRate                *float64 `json:"yield_rate" validate:"omitempty,gte=0,lte=100"`
	SpecialComplianceFlag    *bool    `json:"special_compliance_flag"`
	BatchSize                *int     `json:"batch_size" validate:"omitempty,gte=0"`
	MonthlyDemandVariability *float64 `json:"monthly_demand_variability" validate:"omitempty,gte=0"`
}

// Apply copies the set fields onto product
func (p ProductPatch) Apply(product *entities.Product) {
	if p.ProductID != nil {
		product.ProductID = entities.ProductID(*p.ProductID)
	}
	if p.MonthlyDemand != nil {
		product.MonthlyDemand = *p.MonthlyDemand
	}
	if p.CurrentUnitCost != nil {
		product.CurrentUnitCost = *p.CurrentUnitCost
	}
	if p.CurrentPlantID != nil {
		product.CurrentPlantID = entities.PlantID(*p.CurrentPlantID)
	}
	if p.UnitVolumeOrWeight != nil {
		product.UnitVolumeOrWeight = p.UnitVolumeOrWeight
	}
	if p.CycleTimeSec != nil {
		product.CycleTimeSec = p.CycleTimeSec
	}
	if p.RequiredMachineType != nil {
		product.RequiredMachineType = p.RequiredMachineType
	}
	if p.YieldRate != nil {
		product.YieldRate = p.YieldRate
	}
	if p.SpecialComplianceFlag != nil {
		product.SpecialComplianceFlag = *p.SpecialComplianceFlag
	}
	if p.BatchSize != nil {
		product.BatchSize = p.BatchSize
	}
	if p.MonthlyDemandVariability != nil {
		product.MonthlyDemandVariability = p.MonthlyDemandVariability
	}
}

// PlantInput is the full set of plant fields accepted on create
type PlantInput struct {
	PlantID                        string   `json:"plant_id" validate:"required,max=64"`
	AvailableCapacity              float64  `json:"available_capacity" validate:"gt=0"`
	UnitProductionCost             float64  `json:"unit_production_cost" validate:"gte=0"`
	TransferFixedCost              float64  `json:"transfer_fixed_cost" validate:"gte=0"`
	EffectiveOEE                   *float64 `json:"effective_oee" validate:"omitempty,gte=0,lte=1"`
	LeadTimeToStart                float64  `json:"lead_time_to_start" validate:"gte=0"`
	AvailableAreaM2                *float64 `json:"available_area_m2" validate:"omitempty,gte=0"`
	AreaRequiredPerProductM2       *float64 `json:"area_required_per_product_m2" validate:"omitempty,gte=0"`
	LaborSkillLevel                *string  `json:"labor_skill_level"`
	TrainingDaysRequired           *int     `json:"training_days_required" validate:"omitempty,gte=0"`
	WarehouseCapacityPallets       *float64 `json:"warehouse_capacity_pallets" validate:"omitempty,gte=0"`
	PalletsPerUnit                 *float64 `json:"pallets_per_unit" validate:"omitempty,gte=0"`
	InterplantTransportCostPerUnit *float64 `json:"interplant_transport_cost_per_unit" validate:"omitempty,gte=0"`
	LeadTimeDays                   *int     `json:"lead_time_days" validate:"omitempty,gte=0"`
	MaxUtilizationTarget           *float64 `json:"max_utilization_target" validate:"omitempty,gte=0,lte=100"`
	SetupTimeHours                 *float64 `json:"setup_time_hours" validate:"omitempty,gte=0"`
	ChangeoverCost                 *float64 `json:"changeover_cost" validate:"omitempty,gte=0"`
	RiskScore                      *float64 `json:"risk_score" validate:"omitempty,gte=0,lte=1"`
	ProbabilityOfDelay             *float64 `json:"probability_of_delay" validate:"omitempty,gte=0,lte=1"`
	DelayCostPerDay                *float64 `json:"delay_cost_per_day" validate:"omitempty,gte=0"`
}

// ToEntity converts the input into a plant without a catalog id
func (in PlantInput) ToEntity() *entities.Plant {
	target := entities.DefaultMaxUtilizationTarget
	if in.MaxUtilizationTarget != nil {
		target = *in.MaxUtilizationTarget
	}
	return &entities.Plant{
		PlantID:                        entities.PlantID(in.PlantID),
		AvailableCapacity:              in.AvailableCapacity,
		UnitProductionCost:             in.UnitProductionCost,
		TransferFixedCost:              in.TransferFixedCost,
		EffectiveOEE:                   in.EffectiveOEE,
		LeadTimeToStart:                in.LeadTimeToStart,
		AvailableAreaM2:                in.AvailableAreaM2,
		AreaRequiredPerProductM2:       in.AreaRequiredPerProductM2,
		LaborSkillLevel:                in.LaborSkillLevel,
		TrainingDaysRequired:           in.TrainingDaysRequired,
		WarehouseCapacityPallets:       in.WarehouseCapacityPallets,
		PalletsPerUnit:                 in.PalletsPerUnit,
		InterplantTransportCostPerUnit: in.InterplantTransportCostPerUnit,
		LeadTimeDays:                   in.LeadTimeDays,
		MaxUtilizationTarget:           target,
		SetupTimeHours:                 in.SetupTimeHours,
		ChangeoverCost:                 in.ChangeoverCost,
		RiskScore:                      in.RiskScore,
		ProbabilityOfDelay:             in.ProbabilityOfDelay,
		DelayCostPerDay:                in.DelayCostPerDay,
	}
}

// PlantPatch carries the fields of a partial plant update; nil means unchanged
type PlantPatch struct {
	PlantID              *string  `json:"plant_id" validate:"omitempty,min=1,max=64"`
	AvailableCapacity    *float64 `json:"available_capacity" validate:"omitempty,gt=0"`
	UnitProductionCost   *float64 `json:"unit_production_cost" validate:"omitempty,gte=0"`
	TransferFixedCost    *float64 `json:"transfer_fixed_cost" validate:"omitempty,gte=0"`
	EffectiveOEE         *float64 `json:"effective_oee" validate:"omitempty,gte=0,lte=1"`
	LeadTimeToStart      *float64 `json:"lead_time_to_start" validate:"omitempty,gte=0"`
	MaxUtilizationTarget *float64 `json:"max_utilization_target" validate:"omitempty,gte=0,lte=100"`
	LaborSkillLevel      *string  `json:"labor_skill_level"`
	TrainingDaysRequired *int     `json:"training_days_required" validate:"omitempty,gte=0"`
	RiskScore            *float64 `json:"risk_score" validate:"omitempty,gte=0,lte=1"`
}

// Apply copies the set fields onto plant
func (p PlantPatch) Apply(plant *entities.Plant) {
	if p.PlantID != nil {
		plant.PlantID = entities.PlantID(*p.PlantID)
	}
	if p.AvailableCapacity != nil {
		plant.AvailableCapacity = *p.AvailableCapacity
	}
	if p.UnitProductionCost != nil {
		plant.UnitProductionCost = *p.UnitProductionCost
	}
	if p.TransferFixedCost != nil {
		plant.TransferFixedCost = *p.TransferFixedCost
	}
	if p.EffectiveOEE != nil {
		plant.EffectiveOEE = p.EffectiveOEE
	}
	if p.LeadTimeToStart != nil {
		plant.LeadTimeToStart = *p.LeadTimeToStart
	}
	if p.MaxUtilizationTarget != nil {
		plant.MaxUtilizationTarget = *p.MaxUtilizationTarget
	}
	if p.LaborSkillLevel != nil {
		plant.LaborSkillLevel = p.LaborSkillLevel
	}
	if p.TrainingDaysRequired != nil {
		plant.TrainingDaysRequired = p.TrainingDaysRequired
	}
	if p.RiskScore != nil {
		plant.RiskScore = p.RiskScore
	}
}
