package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
)

// PlantRepository provides in-memory plant storage with monotonic ids
type PlantRepository struct {
	mu        sync.RWMutex
	plants    []entities.Plant
	plantsMap map[entities.PlantID]int
	nextID    int
}

// NewPlantRepository creates a new in-memory plant repository
func NewPlantRepository(expectedPlants int) *PlantRepository {
	return &PlantRepository{
		plants:    make([]entities.Plant, 0, expectedPlants),
		plantsMap: make(map[entities.PlantID]int, expectedPlants),
		nextID:    1,
	}
}

// Verify interface compliance
var _ repositories.PlantRepository = (*PlantRepository)(nil)

// ListPlants returns copies of all plants in id order
func (r *PlantRepository) ListPlants(_ context.Context) ([]*entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plants := make([]*entities.Plant, 0, len(r.plants))
	for i := range r.plants {
		p := r.plants[i]
		plants = append(plants, &p)
	}
	return plants, nil
}

// GetPlant returns the plant with the given catalog id
func (r *PlantRepository) GetPlant(_ context.Context, id int) (*entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexOf(id)
	if index < 0 {
		return nil, fmt.Errorf("plant %d: %w", id, repositories.ErrPlantNotFound)
	}
	p := r.plants[index]
	return &p, nil
}

// FindPlant returns the plant with the given plant id
func (r *PlantRepository) FindPlant(_ context.Context, plantID entities.PlantID) (*entities.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.plantsMap[plantID]
	if !exists {
		return nil, fmt.Errorf("plant %s: %w", plantID, repositories.ErrPlantNotFound)
	}
	p := r.plants[index]
	return &p, nil
}

// CreatePlant stores the plant under the next catalog id
func (r *PlantRepository) CreatePlant(_ context.Context, plant *entities.Plant) (*entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plantsMap[plant.PlantID]; exists {
		return nil, fmt.Errorf("plant %s: %w", plant.PlantID, repositories.ErrDuplicatePlant)
	}

	stored := *plant
	stored.ID = r.nextID
	r.nextID++
	r.plantsMap[stored.PlantID] = len(r.plants)
	r.plants = append(r.plants, stored)
	return &stored, nil
}

// UpdatePlant replaces the plant stored under plant.ID
func (r *PlantRepository) UpdatePlant(_ context.Context, plant *entities.Plant) (*entities.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(plant.ID)
	if index < 0 {
		return nil, fmt.Errorf("plant %d: %w", plant.ID, repositories.ErrPlantNotFound)
	}
	if other, exists := r.plantsMap[plant.PlantID]; exists && other != index {
		return nil, fmt.Errorf("plant %s: %w", plant.PlantID, repositories.ErrDuplicatePlant)
	}

	delete(r.plantsMap, r.plants[index].PlantID)
	r.plants[index] = *plant
	r.plantsMap[plant.PlantID] = index
	stored := r.plants[index]
	return &stored, nil
}

// DeletePlant removes the plant with the given catalog id
func (r *PlantRepository) DeletePlant(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return fmt.Errorf("plant %d: %w", id, repositories.ErrPlantNotFound)
	}
	r.plants = append(r.plants[:index], r.plants[index+1:]...)
	r.reindex()
	return nil
}

// ClearPlants removes every plant and restarts the id sequence
func (r *PlantRepository) ClearPlants(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plants = r.plants[:0]
	r.plantsMap = make(map[entities.PlantID]int)
	r.nextID = 1
	return nil
}

// CountPlants returns the number of stored plants
func (r *PlantRepository) CountPlants(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plants), nil
}

func (r *PlantRepository) indexOf(id int) int {
	for i := range r.plants {
		if r.plants[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *PlantRepository) reindex() {
	r.plantsMap = make(map[entities.PlantID]int, len(r.plants))
	for i := range r.plants {
		r.plantsMap[r.plants[i].PlantID] = i
	}
}
