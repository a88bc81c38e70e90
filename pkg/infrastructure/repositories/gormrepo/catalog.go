package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
)

// Catalog replaces both catalog tables inside one transaction
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

var _ repositories.CatalogReplacer = (*Catalog)(nil)

// ReplaceCatalog truncates both tables, restarting their id sequences, and
// inserts the new rows. Any failure rolls the whole replacement back.
func (c *Catalog) ReplaceCatalog(ctx context.Context, products []*entities.Product, plants []*entities.Plant) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo, plantRepo := NewProductRepository(tx), NewPlantRepository(tx)
		if err := productRepo.ClearProducts(ctx); err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if err := plantRepo.ClearPlants(ctx); err != nil {
			return fmt.Errorf("clear plants: %w", err)
		}
		for _, p := range products {
			if _, err := productRepo.CreateProduct(ctx, p); err != nil {
				return err
			}
		}
		for _, p := range plants {
			if _, err := plantRepo.CreatePlant(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
