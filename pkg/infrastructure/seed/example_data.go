// Package seed holds the automotive example catalog used for demos and tests.
package seed

import "github.com/vsinha/transferplan/pkg/domain/entities"

type productRow struct {
	id         string
	demand     float64
	unitCost   float64
	plant      string
	volume     float64
	cycleTime  float64
	yield      float64
	compliance bool
	batch      int
}

var productRows = []productRow{
	{"FUEL-PUMP-FP100", 18000, 45.00, "PLANT-JP-TOKYO", 2.5, 120, 98.5, false, 50},
	{"INJECTOR-INJ200", 22000, 32.50, "PLANT-JP-TOKYO", 1.2, 90, 99.2, true, 100},
	{"TURBO-CHG300", 12000, 85.00, "PLANT-JP-TOKYO", 5.0, 180, 96.5, true, 30},
	{"SENSOR-OXY400", 28000, 28.00, "PLANT-US-MICHIGAN", 0.8, 75, 97.5, true, 200},
	{"ACTUATOR-ACT500", 25000, 38.00, "PLANT-MX-MONTERREY", 2.0, 110, 98.0, false, 60},
	{"VALVE-EGR600", 20000, 42.00, "PLANT-US-MICHIGAN", 3.0, 130, 97.0, false, 45},
	{"RELAY-PWR700", 35000, 12.00, "PLANT-TH-BANGKOK", 0.3, 45, 99.0, false, 250},
	{"SWITCH-TMP800", 40000, 8.50, "PLANT-TH-BANGKOK", 0.2, 35, 99.5, false, 400},
	{"CONNECTOR-ELC900", 50000, 5.50, "PLANT-MX-MONTERREY", 0.1, 25, 99.8, false, 500},
	{"GASKET-EXH1000", 32000, 6.00, "PLANT-TH-BANGKOK", 0.2, 30, 99.7, false, 400},
	{"FILTER-AIR1100", 38000, 15.00, "PLANT-MX-MONTERREY", 1.0, 55, 99.3, false, 150},
	{"BEARING-WHL1200", 16000, 58.00, "PLANT-JP-TOKYO", 2.8, 140, 97.2, true, 40},
}

type plantRow struct {
	id        string
	capacity  float64
	unitCost  float64
	fixedCost float64
	oee       float64
	leadTime  float64
	area      float64
	skill     string
	training  int
	pallets   float64
	maxUtil   float64
	risk      float64
}

var plantRows = []plantRow{
	{"PLANT-JP-TOKYO", 90000, 30.0, 80000, 0.92, 2, 7500, "High", 10, 800, 90, 0.15},
	{"PLANT-TH-BANGKOK", 120000, 19.0, 45000, 0.88, 3, 10000, "Medium", 15, 1000, 85, 0.25},
	{"PLANT-MX-MONTERREY", 130000, 24.0, 55000, 0.85, 4, 9500, "Medium", 20, 950, 88, 0.30},
	{"PLANT-US-MICHIGAN", 85000, 32.0, 75000, 0.90, 2, 7000, "High", 12, 750, 88, 0.18},
}

// ExampleProducts returns fresh copies of the example products
func ExampleProducts() []*entities.Product {
	products := make([]*entities.Product, 0, len(productRows))
	for _, r := range productRows {
		volume, cycle, yield, batch := r.volume, r.cycleTime, r.yield, r.batch
		products = append(products, &entities.Product{
			ProductID:             entities.ProductID(r.id),
			MonthlyDemand:         r.demand,
			CurrentUnitCost:       r.unitCost,
			CurrentPlantID:        entities.PlantID(r.plant),
			UnitVolumeOrWeight:    &volume,
			CycleTimeSec:          &cycle,
			YieldRate:             &yield,
			SpecialComplianceFlag: r.compliance,
			BatchSize:             &batch,
		})
	}
	return products
}

// ExamplePlants returns fresh copies of the example plants
func ExamplePlants() []*entities.Plant {
	plants := make([]*entities.Plant, 0, len(plantRows))
	for _, r := range plantRows {
		oee, area, skill, training, pallets, risk := r.oee, r.area, r.skill, r.training, r.pallets, r.risk
		plants = append(plants, &entities.Plant{
			PlantID:                  entities.PlantID(r.id),
			AvailableCapacity:        r.capacity,
			UnitProductionCost:       r.unitCost,
			TransferFixedCost:        r.fixedCost,
			EffectiveOEE:             &oee,
			LeadTimeToStart:          r.leadTime,
			AvailableAreaM2:          &area,
			LaborSkillLevel:          &skill,
			TrainingDaysRequired:     &training,
			WarehouseCapacityPallets: &pallets,
			MaxUtilizationTarget:     r.maxUtil,
			RiskScore:                &risk,
		})
	}
	return plants
}
