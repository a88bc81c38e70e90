package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
	"github.com/vsinha/transferplan/pkg/infrastructure/seed"
)

func TestRecordMapping_PreservesOptionalFields(t *testing.T) {
	for _, want := range seed.ExampleProducts() {
		want.ID = 7
		if diff := cmp.Diff(want, productRecord(want).toEntity()); diff != "" {
			t.Errorf("product mapping mismatch (-want +got):\n%s", diff)
		}
	}
	for _, want := range seed.ExamplePlants() {
		want.ID = 3
		if diff := cmp.Diff(want, plantRecord(want).toEntity()); diff != "" {
			t.Errorf("plant mapping mismatch (-want +got):\n%s", diff)
		}
	}

	bare := &entities.Plant{PlantID: "BARE", AvailableCapacity: 1, MaxUtilizationTarget: 90}
	got := plantRecord(bare).toEntity()
	if got.EffectiveOEE != nil || got.OEE() != 1.0 {
		t.Errorf("missing OEE must stay missing, got %v", got.EffectiveOEE)
	}
}

// TestRepositories_Postgres runs against a live database when
// TRANSFERPLAN_TEST_DATABASE_URL is set.
func TestRepositories_Postgres(t *testing.T) {
	dsn := os.Getenv("TRANSFERPLAN_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRANSFERPLAN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(dsn)
	require.NoError(t, err)
	defer Close(db)

	products := NewProductRepository(db)
	plants := NewPlantRepository(db)
	require.NoError(t, products.ClearProducts(ctx))
	require.NoError(t, plants.ClearPlants(ctx))

	created, err := products.CreateProduct(ctx, &entities.Product{ProductID: "P1", MonthlyDemand: 10, CurrentPlantID: "X"})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	_, err = products.CreateProduct(ctx, &entities.Product{ProductID: "P1", MonthlyDemand: 5})
	require.True(t, errors.Is(err, repositories.ErrDuplicateProduct), "got %v", err)

	created.MonthlyDemand = 20
	updated, err := products.UpdateProduct(ctx, created)
	require.NoError(t, err)
	require.Equal(t, 20.0, updated.MonthlyDemand)

	found, err := products.FindProduct(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, 20.0, found.MonthlyDemand)

	require.NoError(t, products.DeleteProduct(ctx, created.ID))
	require.True(t, errors.Is(products.DeleteProduct(ctx, created.ID), repositories.ErrProductNotFound))

	plant, err := plants.CreatePlant(ctx, &entities.Plant{PlantID: "X", AvailableCapacity: 100, MaxUtilizationTarget: 90})
	require.NoError(t, err)
	_, err = plants.CreatePlant(ctx, &entities.Plant{PlantID: "X", AvailableCapacity: 1})
	require.True(t, errors.Is(err, repositories.ErrDuplicatePlant), "got %v", err)

	count, err := plants.CountPlants(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = plants.GetPlant(ctx, plant.ID+100)
	require.True(t, errors.Is(err, repositories.ErrPlantNotFound))

	catalog := NewCatalog(db)
	require.NoError(t, catalog.ReplaceCatalog(ctx, seed.ExampleProducts(), seed.ExamplePlants()))
	loaded, err := products.CountProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, len(seed.ExampleProducts()), loaded)
	first, err := products.GetProduct(ctx, 1)
	require.NoError(t, err, "id sequence restarts")
	require.Equal(t, seed.ExampleProducts()[0].ProductID, first.ProductID)

	// a duplicate halfway through rolls back the truncate as well
	dup := []*entities.Product{
		{ProductID: "Q1", MonthlyDemand: 1, CurrentPlantID: "X"},
		{ProductID: "Q1", MonthlyDemand: 2, CurrentPlantID: "X"},
	}
	err = catalog.ReplaceCatalog(ctx, dup, nil)
	require.True(t, errors.Is(err, repositories.ErrDuplicateProduct), "got %v", err)
	kept, err := products.CountProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, loaded, kept)
	keptPlants, err := plants.CountPlants(ctx)
	require.NoError(t, err)
	require.Equal(t, len(seed.ExamplePlants()), keptPlants)
}
