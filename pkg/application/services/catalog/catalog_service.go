// Package catalog manages the product and plant catalogs that feed the optimizer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vsinha/transferplan/pkg/application/dto"
	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/infrastructure/events"
	"github.com/vsinha/transferplan/pkg/infrastructure/seed"
)

// ExampleDataLoadedMessage is returned after the example catalog is loaded
const ExampleDataLoadedMessage = "Example data loaded successfully"

// InvalidEntryError reports a product or plant that fails entity validation
type InvalidEntryError struct {
	Err error
}

func (e *InvalidEntryError) Error() string { return e.Err.Error() }

func (e *InvalidEntryError) Unwrap() error { return e.Err }

// CatalogService wraps the product and plant repositories and records every
// change in the event log
type CatalogService struct {
	products repositories.ProductRepository
	plants   repositories.PlantRepository
	history  events.Log
	replacer repositories.CatalogReplacer

	// serializes read-modify-write sequences such as upserts and seeding
	mu sync.Mutex
}

// NewCatalogService creates a catalog service. history may be nil.
func NewCatalogService(
	products repositories.ProductRepository,
	plants repositories.PlantRepository,
	history events.Log,
) *CatalogService {
	return &CatalogService{products: products, plants: plants, history: history}
}

// WithReplacer makes Replace swap both catalogs through r as one unit
func (s *CatalogService) WithReplacer(r repositories.CatalogReplacer) *CatalogService {
	s.replacer = r
	return s
}

// Products returns the product repository
func (s *CatalogService) Products() repositories.ProductRepository { return s.products }

// Plants returns the plant repository
func (s *CatalogService) Plants() repositories.PlantRepository { return s.plants }

func (s *CatalogService) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entities.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// CreateProduct stores a new product, or replaces the product with the same
// product_id while keeping its catalog id. created reports which happened.
func (s *CatalogService) CreateProduct(ctx context.Context, product *entities.Product) (stored *entities.Product, created bool, err error) {
	if err := product.Validate(); err != nil {
		return nil, false, &InvalidEntryError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.products.FindProduct(ctx, product.ProductID)
	switch {
	case err == nil:
		replacement := *product
		replacement.ID = existing.ID
		stored, err = s.products.UpdateProduct(ctx, &replacement)
		if err != nil {
			return nil, false, fmt.Errorf("failed to replace product %s: %w", product.ProductID, err)
		}
		s.publish(events.ProductStream(stored.ID), events.ProductUpdatedEvent, events.ProductUpdated{OldProduct: *existing, NewProduct: *stored})
		return stored, false, nil
	case !errors.Is(err, repositories.ErrProductNotFound):
		return nil, false, fmt.Errorf("failed to look up product %s: %w", product.ProductID, err)
	}

	stored, err = s.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create product %s: %w", product.ProductID, err)
	}
	s.publish(events.ProductStream(stored.ID), events.ProductCreatedEvent, events.ProductCreated{Product: *stored})
	return stored, true, nil
}

// UpdateProduct applies a partial update to the product with the given id
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, patch dto.ProductPatch) (*entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, &InvalidEntryError{Err: err}
	}

	stored, err := s.products.UpdateProduct(ctx, &updated)
	if err != nil {
		return nil, err
	}
	s.publish(events.ProductStream(id), events.ProductUpdatedEvent, events.ProductUpdated{OldProduct: *existing, NewProduct: *stored})
	return stored, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.publish(events.ProductStream(id), events.ProductDeletedEvent, events.ProductDeleted{Product: *existing})
	return nil
}

func (s *CatalogService) ListPlants(ctx context.Context) ([]*entities.Plant, error) {
	return s.plants.ListPlants(ctx)
}

func (s *CatalogService) GetPlant(ctx context.Context, id int) (*entities.Plant, error) {
	return s.plants.GetPlant(ctx, id)
}

// CreatePlant stores a new plant. A duplicate plant_id is rejected with
// repositories.ErrDuplicatePlant.
func (s *CatalogService) CreatePlant(ctx context.Context, plant *entities.Plant) (*entities.Plant, error) {
	if err := plant.Validate(); err != nil {
		return nil, &InvalidEntryError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.plants.CreatePlant(ctx, plant)
	if err != nil {
		return nil, err
	}
	s.publish(events.PlantStream(stored.ID), events.PlantCreatedEvent, events.PlantCreated{Plant: *stored})
	return stored, nil
}

// UpdatePlant applies a partial update to the plant with the given id
func (s *CatalogService) UpdatePlant(ctx context.Context, id int, patch dto.PlantPatch) (*entities.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.plants.GetPlant(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, &InvalidEntryError{Err: err}
	}

	stored, err := s.plants.UpdatePlant(ctx, &updated)
	if err != nil {
		return nil, err
	}
	s.publish(events.PlantStream(id), events.PlantUpdatedEvent, events.PlantUpdated{OldPlant: *existing, NewPlant: *stored})
	return stored, nil
}

func (s *CatalogService) DeletePlant(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.plants.GetPlant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.plants.DeletePlant(ctx, id); err != nil {
		return err
	}
	s.publish(events.PlantStream(id), events.PlantDeletedEvent, events.PlantDeleted{Plant: *existing})
	return nil
}

// Status reports catalog sizes and whether optimization can run
func (s *CatalogService) Status(ctx context.Context) (*dto.CatalogStatus, error) {
	products, err := s.products.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	plants, err := s.plants.CountPlants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count plants: %w", err)
	}
	return &dto.CatalogStatus{
		ProductsCount:        products,
		PlantsCount:          plants,
		ReadyForOptimization: products > 0 && plants > 0,
	}, nil
}

// Snapshot reads both catalogs once, for a single optimization run
func (s *CatalogService) Snapshot(ctx context.Context) ([]*entities.Product, []*entities.Plant, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read product catalog: %w", err)
	}
	plants, err := s.plants.ListPlants(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read plant catalog: %w", err)
	}
	return products, plants, nil
}

// LoadExampleData replaces both catalogs with the automotive example and
// restarts the id sequences
func (s *CatalogService) LoadExampleData(ctx context.Context) (*dto.ExampleDataSummary, error) {
	return s.Replace(ctx, seed.ExampleProducts(), seed.ExamplePlants(), ExampleDataLoadedMessage)
}

// Replace clears both catalogs and loads the given products and plants. The
// whole load is validated before anything is cleared, and with a replacer set
// the swap is atomic.
func (s *CatalogService) Replace(
	ctx context.Context,
	products []*entities.Product,
	plants []*entities.Plant,
	message string,
) (*dto.ExampleDataSummary, error) {
	if err := checkReplacement(products, plants); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replacer != nil {
		if err := s.replacer.ReplaceCatalog(ctx, products, plants); err != nil {
			return nil, fmt.Errorf("failed to replace catalog: %w", err)
		}
	} else if err := s.replaceInPlace(ctx, products, plants); err != nil {
		return nil, err
	}

	demand := decimal.Zero
	for _, p := range products {
		demand = demand.Add(decimal.NewFromFloat(p.MonthlyDemand))
	}
	capacity := decimal.Zero
	for _, p := range plants {
		capacity = capacity.Add(decimal.NewFromFloat(p.EffectiveCapacity()))
	}

	summary := &dto.ExampleDataSummary{
		Message:                message,
		ProductsAdded:          len(products),
		PlantsAdded:            len(plants),
		TotalMonthlyDemand:     demand.InexactFloat64(),
		TotalAvailableCapacity: capacity.Round(6).InexactFloat64(),
	}
	s.publish(events.CatalogStream, events.CatalogSeededEvent, events.CatalogSeeded{
		ProductsAdded: summary.ProductsAdded,
		PlantsAdded:   summary.PlantsAdded,
	})
	return summary, nil
}

func (s *CatalogService) replaceInPlace(ctx context.Context, products []*entities.Product, plants []*entities.Plant) error {
	if err := s.products.ClearProducts(ctx); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if err := s.plants.ClearPlants(ctx); err != nil {
		return fmt.Errorf("failed to clear plants: %w", err)
	}
	for _, p := range products {
		if _, err := s.products.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("failed to load product %s: %w", p.ProductID, err)
		}
	}
	for _, p := range plants {
		if _, err := s.plants.CreatePlant(ctx, p); err != nil {
			return fmt.Errorf("failed to load plant %s: %w", p.PlantID, err)
		}
	}
	return nil
}

// checkReplacement rejects invalid or repeated entries up front
func checkReplacement(products []*entities.Product, plants []*entities.Plant) error {
	seenProducts := make(map[entities.ProductID]bool, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return &InvalidEntryError{Err: err}
		}
		if seenProducts[p.ProductID] {
			return &InvalidEntryError{Err: fmt.Errorf("product %s: %w", p.ProductID, repositories.ErrDuplicateProduct)}
		}
		seenProducts[p.ProductID] = true
	}
	seenPlants := make(map[entities.PlantID]bool, len(plants))
	for _, p := range plants {
		if err := p.Validate(); err != nil {
			return &InvalidEntryError{Err: err}
		}
		if seenPlants[p.PlantID] {
			return &InvalidEntryError{Err: fmt.Errorf("plant %s: %w", p.PlantID, repositories.ErrDuplicatePlant)}
		}
		seenPlants[p.PlantID] = true
	}
	return nil
}

func (s *CatalogService) publish(stream, eventType string, data any) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Append(stream, eventType, data); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to record catalog event")
	}
}
