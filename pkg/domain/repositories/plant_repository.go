package repositories

import (
	"context"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// PlantRepository provides access to the plant catalog
type PlantRepository interface {
	ListPlants(ctx context.Context) ([]*entities.Plant, error)
	GetPlant(ctx context.Context, id int) (*entities.Plant, error)
	FindPlant(ctx context.Context, plantID entities.PlantID) (*entities.Plant, error)
	CreatePlant(ctx context.Context, plant *entities.Plant) (*entities.Plant, error)
	UpdatePlant(ctx context.Context, plant *entities.Plant) (*entities.Plant, error)
	DeletePlant(ctx context.Context, id int) error
	ClearPlants(ctx context.Context) error
	CountPlants(ctx context.Context) (int, error)
}
