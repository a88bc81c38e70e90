package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// Precondition messages reported to planners
const (
	MsgNoProducts = "No products available. Please add products first."
	MsgNoPlants   = "No plants available. Please add plants first."
)

// CatalogValidator checks that the catalogs can be handed to the optimizer
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// CatalogValidationResult contains the results of catalog validation
type CatalogValidationResult struct {
	NoProducts         bool
	NoPlants           bool
	UnassignedProducts []entities.ProductID
	// UnknownCurrentPlants lists products whose current plant is not in the
	// plant catalog. Informational: such products can still be transferred.
	UnknownCurrentPlants []entities.ProductID
	Errors               []string
}

// Valid reports whether optimization may proceed
func (r *CatalogValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateForOptimization checks catalog preconditions. Checks stop at the
// first empty catalog, matching what a planner needs to fix first.
func (v *CatalogValidator) ValidateForOptimization(
	products []*entities.Product,
	plants []*entities.Plant,
) *CatalogValidationResult {
	result := &CatalogValidationResult{
		UnassignedProducts:   make([]entities.ProductID, 0),
		UnknownCurrentPlants: make([]entities.ProductID, 0),
		Errors:               make([]string, 0),
	}

	if len(products) == 0 {
		result.NoProducts = true
		result.Errors = append(result.Errors, MsgNoProducts)
		return result
	}
	if len(plants) == 0 {
		result.NoPlants = true
		result.Errors = append(result.Errors, MsgNoPlants)
		return result
	}

	known := make(map[entities.PlantID]bool, len(plants))
	for _, plant := range plants {
		known[plant.PlantID] = true
	}

	for _, product := range products {
		if !product.HasCurrentPlant() {
			result.UnassignedProducts = append(result.UnassignedProducts, product.ProductID)
			continue
		}
		if !known[product.CurrentPlantID] {
			result.UnknownCurrentPlants = append(result.UnknownCurrentPlants, product.ProductID)
		}
	}

	if len(result.UnassignedProducts) > 0 {
		names := make([]string, len(result.UnassignedProducts))
		for i, id := range result.UnassignedProducts {
			names[i] = string(id)
		}
		result.Errors = append(result.Errors, fmt.Sprintf(
			"The following products must be assigned to a current plant before optimization: %s",
			strings.Join(names, ", "),
		))
	}

	return result
}
