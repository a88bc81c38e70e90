package optimization

import (
	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// FeasiblePair is a product that may be produced at a plant
type FeasiblePair struct {
	Product *entities.Product
	Plant   *entities.Plant
}

// IsTransfer reports whether the pair moves the product away from its current plant
func (p FeasiblePair) IsTransfer() bool {
	return p.Product.CurrentPlantID != p.Plant.PlantID
}

func (p FeasiblePair) suffix() string {
	return string(p.Product.ProductID) + "_" + string(p.Plant.PlantID)
}

// Feasibility is the output of the feasibility filter
type Feasibility struct {
	// Pairs in product-major catalog order
	Pairs []FeasiblePair
	// Unplaceable lists non-excluded products no plant can take
	Unplaceable []entities.ProductID
	// Stranded lists excluded products whose current plant cannot take them
	Stranded []entities.ProductID
}

// FilterFeasiblePairs reduces products × plants to the pairs whose demand fits the
// plant's effective capacity. An excluded product may only stay at its current
// plant, and only when that plant is not excluded.
func FilterFeasiblePairs(
	products []*entities.Product,
	plants []*entities.Plant,
	config entities.TransferPlanConfig,
) *Feasibility {
	excludedProducts := config.ExcludedProductSet()
	excludedPlants := config.ExcludedPlantSet()

	plantsByID := make(map[entities.PlantID]*entities.Plant, len(plants))
	for _, plant := range plants {
		plantsByID[plant.PlantID] = plant
	}

	result := &Feasibility{Pairs: make([]FeasiblePair, 0, len(products)*len(plants))}
	for _, product := range products {
		before := len(result.Pairs)

		if _, excluded := excludedProducts[product.ProductID]; excluded {
			current, ok := plantsByID[product.CurrentPlantID]
			_, plantExcluded := excludedPlants[product.CurrentPlantID]
			if ok && !plantExcluded && fits(product, current) {
				result.Pairs = append(result.Pairs, FeasiblePair{Product: product, Plant: current})
			} else {
				result.Stranded = append(result.Stranded, product.ProductID)
			}
			continue
		}

		for _, plant := range plants {
			if _, excluded := excludedPlants[plant.PlantID]; excluded {
				continue
			}
			if fits(product, plant) {
				result.Pairs = append(result.Pairs, FeasiblePair{Product: product, Plant: plant})
			}
		}
		if len(result.Pairs) == before {
			result.Unplaceable = append(result.Unplaceable, product.ProductID)
		}
	}
	return result
}

func fits(product *entities.Product, plant *entities.Plant) bool {
	return product.MonthlyDemand <= plant.EffectiveCapacity()
}

// Skipped counts the products that have no feasible pair and so take no
// part in the model.
func (f *Feasibility) Skipped() int {
	return len(f.Unplaceable) + len(f.Stranded)
}
