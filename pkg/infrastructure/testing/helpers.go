package testing

import (
	"context"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/transferplan/pkg/infrastructure/seed"
)

// Product builds a product currently made at currentPlant
func Product(id string, demand float64, currentPlant string) *entities.Product {
	return &entities.Product{
		ProductID:       entities.ProductID(id),
		MonthlyDemand:   demand,
		CurrentUnitCost: 10,
		CurrentPlantID:  entities.PlantID(currentPlant),
	}
}

// Plant builds a plant with full OEE and no lead time
func Plant(id string, capacity, unitCost, fixedCost float64) *entities.Plant {
	return &entities.Plant{
		PlantID:              entities.PlantID(id),
		AvailableCapacity:    capacity,
		UnitProductionCost:   unitCost,
		TransferFixedCost:    fixedCost,
		MaxUtilizationTarget: entities.DefaultMaxUtilizationTarget,
	}
}

// WithOEE sets the plant's effective OEE
func WithOEE(plant *entities.Plant, oee float64) *entities.Plant {
	plant.EffectiveOEE = &oee
	return plant
}

// WithLeadTime sets the plant's lead time to start, in months
func WithLeadTime(plant *entities.Plant, months float64) *entities.Plant {
	plant.LeadTimeToStart = months
	return plant
}

// BuildCatalog loads the given products and plants into fresh in-memory repositories
func BuildCatalog(products []*entities.Product, plants []*entities.Plant) (*memory.ProductRepository, *memory.PlantRepository) {
	ctx := context.Background()
	productRepo := memory.NewProductRepository(len(products))
	plantRepo := memory.NewPlantRepository(len(plants))

	for _, p := range products {
		if _, err := productRepo.CreateProduct(ctx, p); err != nil {
			panic(err)
		}
	}
	for _, p := range plants {
		if _, err := plantRepo.CreatePlant(ctx, p); err != nil {
			panic(err)
		}
	}
	return productRepo, plantRepo
}

// BuildAutomotiveTestData loads the twelve-product, four-plant automotive example
func BuildAutomotiveTestData() (*memory.ProductRepository, *memory.PlantRepository) {
	return BuildCatalog(seed.ExampleProducts(), seed.ExamplePlants())
}

// BuildTransferScenario has one product whose current plant is too small,
// so it must move to the only plant that fits.
func BuildTransferScenario() (*memory.ProductRepository, *memory.PlantRepository) {
	return BuildCatalog(
		[]*entities.Product{Product("P1", 100, "X")},
		[]*entities.Plant{Plant("X", 50, 10, 1000), Plant("Y", 200, 12, 5000)},
	)
}
