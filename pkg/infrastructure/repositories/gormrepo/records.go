package gormrepo

import (
	"time"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// ProductRecord is the products table row
type ProductRecord struct {
	ID                       int     `gorm:"primaryKey;autoIncrement"`
	ProductID                string  `gorm:"uniqueIndex;size:64;not null"`
	MonthlyDemand            float64 `gorm:"not null"`
	CurrentUnitCost          float64 `gorm:"not null;default:0"`
	CurrentPlantID           string  `gorm:"size:64;index"`
	UnitVolumeOrWeight       *float64
	CycleTimeSec             *float64
	RequiredMachineType      *string `gorm:"size:64"`
	YieldRate                *float64
	SpecialComplianceFlag    bool `gorm:"not null;default:false"`
	BatchSize                *int
	MonthlyDemandVariability *float64
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (ProductRecord) TableName() string { return "products" }

func productRecord(p *entities.Product) *ProductRecord {
	return &ProductRecord{
		ID:                       p.ID,
		ProductID:                string(p.ProductID),
		MonthlyDemand:            p.MonthlyDemand,
		CurrentUnitCost:          p.CurrentUnitCost,
		CurrentPlantID:           string(p.CurrentPlantID),
		UnitVolumeOrWeight:       p.UnitVolumeOrWeight,
		CycleTimeSec:             p.CycleTimeSec,
		RequiredMachineType:      p.RequiredMachineType,
		YieldRate:                p.YieldRate,
		SpecialComplianceFlag:    p.SpecialComplianceFlag,
		BatchSize:                p.BatchSize,
		MonthlyDemandVariability: p.MonthlyDemandVariability,
	}
}

func (r *ProductRecord) toEntity() *entities.Product {
	return &entities.Product{
		ID:                       r.ID,
		ProductID:                entities.ProductID(r.ProductID),
		MonthlyDemand:            r.MonthlyDemand,
		CurrentUnitCost:          r.CurrentUnitCost,
		CurrentPlantID:           entities.PlantID(r.CurrentPlantID),
		UnitVolumeOrWeight:       r.UnitVolumeOrWeight,
		CycleTimeSec:             r.CycleTimeSec,
		RequiredMachineType:      r.RequiredMachineType,
		YieldRate:                r.YieldRate,
		SpecialComplianceFlag:    r.SpecialComplianceFlag,
		BatchSize:                r.BatchSize,
		MonthlyDemandVariability: r.MonthlyDemandVariability,
	}
}

// PlantRecord is the plants table row
type PlantRecord struct {
	ID                             int     `gorm:"primaryKey;autoIncrement"`
	PlantID                        string  `gorm:"uniqueIndex;size:64;not null"`
	AvailableCapacity              float64 `gorm:"not null"`
	UnitProductionCost             float64 `gorm:"not null;default:0"`
	TransferFixedCost              float64 `gorm:"not null;default:0"`
	EffectiveOEE                   *float64
	LeadTimeToStart                float64 `gorm:"not null;default:0"`
	AvailableAreaM2                *float64
	AreaRequiredPerProductM2       *float64
	LaborSkillLevel                *string `gorm:"size:32"`
	TrainingDaysRequired           *int
	WarehouseCapacityPallets       *float64
	PalletsPerUnit                 *float64
	InterplantTransportCostPerUnit *float64
	LeadTimeDays                   *int
	MaxUtilizationTarget           float64 `gorm:"not null;default:90"`
	SetupTimeHours                 *float64
	ChangeoverCost                 *float64
	RiskScore                      *float64
	ProbabilityOfDelay             *float64
	DelayCostPerDay                *float64
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

func (PlantRecord) TableName() string { return "plants" }

func plantRecord(p *entities.Plant) *PlantRecord {
	return &PlantRecord{
		ID:                             p.ID,
		PlantID:                        string(p.PlantID),
		AvailableCapacity:              p.AvailableCapacity,
		UnitProductionCost:             p.UnitProductionCost,
		TransferFixedCost:              p.TransferFixedCost,
		EffectiveOEE:                   p.EffectiveOEE,
		LeadTimeToStart:                p.LeadTimeToStart,
		AvailableAreaM2:                p.AvailableAreaM2,
		AreaRequiredPerProductM2:       p.AreaRequiredPerProductM2,
		LaborSkillLevel:                p.LaborSkillLevel,
		TrainingDaysRequired:           p.TrainingDaysRequired,
		WarehouseCapacityPallets:       p.WarehouseCapacityPallets,
		PalletsPerUnit:                 p.PalletsPerUnit,
		InterplantTransportCostPerUnit: p.InterplantTransportCostPerUnit,
		LeadTimeDays:                   p.LeadTimeDays,
		MaxUtilizationTarget:           p.MaxUtilizationTarget,
		SetupTimeHours:                 p.SetupTimeHours,
		ChangeoverCost:                 p.ChangeoverCost,
		RiskScore:                      p.RiskScore,
		ProbabilityOfDelay:             p.ProbabilityOfDelay,
		DelayCostPerDay:                p.DelayCostPerDay,
	}
}

func (r *PlantRecord) toEntity() *entities.Plant {
	return &entities.Plant{
		ID:                             r.ID,
		PlantID:                        entities.PlantID(r.PlantID),
		AvailableCapacity:              r.AvailableCapacity,
		UnitProductionCost:             r.UnitProductionCost,
		TransferFixedCost:              r.TransferFixedCost,
		EffectiveOEE:                   r.EffectiveOEE,
		LeadTimeToStart:                r.LeadTimeToStart,
		AvailableAreaM2:                r.AvailableAreaM2,
		AreaRequiredPerProductM2:       r.AreaRequiredPerProductM2,
		LaborSkillLevel:                r.LaborSkillLevel,
		TrainingDaysRequired:           r.TrainingDaysRequired,
		WarehouseCapacityPallets:       r.WarehouseCapacityPallets,
		PalletsPerUnit:                 r.PalletsPerUnit,
		InterplantTransportCostPerUnit: r.InterplantTransportCostPerUnit,
		LeadTimeDays:                   r.LeadTimeDays,
		MaxUtilizationTarget:           r.MaxUtilizationTarget,
		SetupTimeHours:                 r.SetupTimeHours,
		ChangeoverCost:                 r.ChangeoverCost,
		RiskScore:                      r.RiskScore,
		ProbabilityOfDelay:             r.ProbabilityOfDelay,
		DelayCostPerDay:                r.DelayCostPerDay,
	}
}
