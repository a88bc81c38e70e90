package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/transferplan/pkg/application/dto"
	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/infrastructure/events"
	"github.com/vsinha/transferplan/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/transferplan/pkg/infrastructure/testing"
)

func newTestCatalog() (*CatalogService, *events.MemoryLog) {
	history := events.NewMemoryLog()
	return NewCatalogService(memory.NewProductRepository(0), memory.NewPlantRepository(0), history), history
}

func eventTypes(t *testing.T, history *events.MemoryLog) []string {
	t.Helper()
	all, err := history.Since(0)
	require.NoError(t, err)
	types := make([]string, len(all))
	for i, e := range all {
		types[i] = e.Type
	}
	return types
}

func TestCatalogService_ProductUpsert(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCatalog()

	first, created, err := svc.CreateProduct(ctx, testhelpers.Product("P1", 100, "X"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, first.ID)

	_, _, err = svc.CreateProduct(ctx, testhelpers.Product("P2", 10, "X"))
	require.NoError(t, err)

	replaced, created, err := svc.CreateProduct(ctx, testhelpers.Product("P1", 250, "Y"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, replaced.ID)
	assert.Equal(t, 250.0, replaced.MonthlyDemand)
	assert.Equal(t, entities.PlantID("Y"), replaced.CurrentPlantID)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	assert.Equal(t, []string{events.ProductCreatedEvent, events.ProductCreatedEvent, events.ProductUpdatedEvent}, eventTypes(t, store))
}

func TestCatalogService_ProductPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCatalog()
	stored, _, err := svc.CreateProduct(ctx, testhelpers.Product("P1", 100, "X"))
	require.NoError(t, err)

	demand := 300.0
	updated, err := svc.UpdateProduct(ctx, stored.ID, dto.ProductPatch{MonthlyDemand: &demand})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.MonthlyDemand)
	assert.Equal(t, entities.PlantID("X"), updated.CurrentPlantID)

	invalid := -1.0
	_, err = svc.UpdateProduct(ctx, stored.ID, dto.ProductPatch{MonthlyDemand: &invalid})
	var invalidErr *InvalidEntryError
	assert.True(t, errors.As(err, &invalidErr), "got %v", err)

	_, err = svc.UpdateProduct(ctx, 99, dto.ProductPatch{MonthlyDemand: &demand})
	assert.True(t, errors.Is(err, repositories.ErrProductNotFound))
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCatalog()
	stored, _, _ := svc.CreateProduct(ctx, testhelpers.Product("P1", 100, "X"))

	require.NoError(t, svc.DeleteProduct(ctx, stored.ID))
	assert.True(t, errors.Is(svc.DeleteProduct(ctx, stored.ID), repositories.ErrProductNotFound))
	assert.Equal(t, []string{events.ProductCreatedEvent, events.ProductDeletedEvent}, eventTypes(t, store))
}

func TestCatalogService_Plants(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCatalog()

	plant, err := svc.CreatePlant(ctx, testhelpers.Plant("X", 100, 10, 1000))
	require.NoError(t, err)
	_, err = svc.CreatePlant(ctx, testhelpers.Plant("X", 50, 1, 1))
	assert.True(t, errors.Is(err, repositories.ErrDuplicatePlant))

	oee := 0.5
	updated, err := svc.UpdatePlant(ctx, plant.ID, dto.PlantPatch{EffectiveOEE: &oee})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.EffectiveCapacity())

	require.NoError(t, svc.DeletePlant(ctx, plant.ID))
	_, err = svc.GetPlant(ctx, plant.ID)
	assert.True(t, errors.Is(err, repositories.ErrPlantNotFound))
}

func TestCatalogService_Status(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCatalog()

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.CatalogStatus{}, *status)

	_, _, _ = svc.CreateProduct(ctx, testhelpers.Product("P1", 100, "X"))
	status, _ = svc.Status(ctx)
	assert.False(t, status.ReadyForOptimization)

	_, _ = svc.CreatePlant(ctx, testhelpers.Plant("X", 100, 10, 1000))
	status, _ = svc.Status(ctx)
	assert.Equal(t, dto.CatalogStatus{ProductsCount: 1, PlantsCount: 1, ReadyForOptimization: true}, *status)
}

func TestCatalogService_LoadExampleData(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCatalog()

	_, _, _ = svc.CreateProduct(ctx, testhelpers.Product("OLD", 1, "X"))
	_, _ = svc.CreatePlant(ctx, testhelpers.Plant("OLD", 1, 1, 1))

	summary, err := svc.LoadExampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.ExampleDataSummary{
		Message:                ExampleDataLoadedMessage,
		ProductsAdded:          12,
		PlantsAdded:            4,
		TotalMonthlyDemand:     336000,
		TotalAvailableCapacity: 375400,
	}, summary)

	products, plants, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 12)
	require.Len(t, plants, 4)
	assert.Equal(t, 1, products[0].ID, "id sequence restarts")
	assert.Equal(t, entities.ProductID("FUEL-PUMP-FP100"), products[0].ProductID)
	assert.Equal(t, 1, plants[0].ID)

	types := eventTypes(t, store)
	assert.Equal(t, events.CatalogSeededEvent, types[len(types)-1])
}

func TestCatalogService_WithoutEventLog(t *testing.T) {
	svc := NewCatalogService(memory.NewProductRepository(0), memory.NewPlantRepository(0), nil)
	_, _, err := svc.CreateProduct(context.Background(), testhelpers.Product("P1", 1, "X"))
	assert.NoError(t, err)
}

func TestCatalogService_ReplaceRejectsBadLoadBeforeClearing(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCatalog()
	_, _, _ = svc.CreateProduct(ctx, testhelpers.Product("KEEP", 10, "X"))
	_, _ = svc.CreatePlant(ctx, testhelpers.Plant("X", 100, 10, 0))

	for name, load := range map[string]struct {
		products []*entities.Product
		plants   []*entities.Plant
	}{
		"duplicate product": {
			products: []*entities.Product{testhelpers.Product("A", 1, "X"), testhelpers.Product("A", 2, "X")},
		},
		"duplicate plant": {
			plants: []*entities.Plant{testhelpers.Plant("Y", 1, 1, 0), testhelpers.Plant("Y", 2, 1, 0)},
		},
		"invalid product": {
			products: []*entities.Product{testhelpers.Product("A", 1, "X"), testhelpers.Product("B", 0, "X")},
		},
	} {
		_, err := svc.Replace(ctx, load.products, load.plants, "reload")
		var invalid *InvalidEntryError
		assert.ErrorAs(t, err, &invalid, name)
	}

	products, plants, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, entities.ProductID("KEEP"), products[0].ProductID)
	assert.Len(t, plants, 1)
	assert.NotContains(t, eventTypes(t, store), events.CatalogSeededEvent)
}

type recordingReplacer struct {
	err      error
	products []*entities.Product
	plants   []*entities.Plant
}

func (r *recordingReplacer) ReplaceCatalog(_ context.Context, products []*entities.Product, plants []*entities.Plant) error {
	if r.err != nil {
		return r.err
	}
	r.products, r.plants = products, plants
	return nil
}

func TestCatalogService_ReplaceGoesThroughReplacer(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCatalog()
	_, _, _ = svc.CreateProduct(ctx, testhelpers.Product("KEEP", 10, "X"))

	failing := &recordingReplacer{err: errors.New("connection reset")}
	svc.WithReplacer(failing)
	_, err := svc.LoadExampleData(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, failing.err)

	count, err := svc.Products().CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "repositories are not touched around the replacer")
	assert.NotContains(t, eventTypes(t, store), events.CatalogSeededEvent)

	ok := &recordingReplacer{}
	svc.WithReplacer(ok)
	summary, err := svc.LoadExampleData(ctx)
	require.NoError(t, err)
	assert.Len(t, ok.products, summary.ProductsAdded)
	assert.Len(t, ok.plants, summary.PlantsAdded)
	assert.Equal(t, 336000.0, summary.TotalMonthlyDemand)
	types := eventTypes(t, store)
	assert.Equal(t, events.CatalogSeededEvent, types[len(types)-1])
}
