package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
)

// PlantRepository stores plants in the plants table
type PlantRepository struct {
	db *gorm.DB
}

// NewPlantRepository creates a GORM-backed plant repository
func NewPlantRepository(db *gorm.DB) *PlantRepository {
	return &PlantRepository{db: db}
}

// Verify interface compliance
var _ repositories.PlantRepository = (*PlantRepository)(nil)

func (r *PlantRepository) ListPlants(ctx context.Context) ([]*entities.Plant, error) {
	var records []PlantRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	plants := make([]*entities.Plant, len(records))
	for i := range records {
		plants[i] = records[i].toEntity()
	}
	return plants, nil
}

func (r *PlantRepository) GetPlant(ctx context.Context, id int) (*entities.Plant, error) {
	var record PlantRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, plantError(fmt.Sprint(id), err)
	}
	return record.toEntity(), nil
}

func (r *PlantRepository) FindPlant(ctx context.Context, plantID entities.PlantID) (*entities.Plant, error) {
	var record PlantRecord
	if err := r.db.WithContext(ctx).Where("plant_id = ?", string(plantID)).First(&record).Error; err != nil {
		return nil, plantError(string(plantID), err)
	}
	return record.toEntity(), nil
}

func (r *PlantRepository) CreatePlant(ctx context.Context, plant *entities.Plant) (*entities.Plant, error) {
	record := plantRecord(plant)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, plantError(string(plant.PlantID), err)
	}
	return record.toEntity(), nil
}

func (r *PlantRepository) UpdatePlant(ctx context.Context, plant *entities.Plant) (*entities.Plant, error) {
	if _, err := r.GetPlant(ctx, plant.ID); err != nil {
		return nil, err
	}
	record := plantRecord(plant)
	if err := r.db.WithContext(ctx).Omit("created_at").Save(record).Error; err != nil {
		return nil, plantError(string(plant.PlantID), err)
	}
	return record.toEntity(), nil
}

func (r *PlantRepository) DeletePlant(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&PlantRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("plant %d: %w", id, repositories.ErrPlantNotFound)
	}
	return nil
}

// ClearPlants empties the table and restarts the id sequence
func (r *PlantRepository) ClearPlants(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("TRUNCATE TABLE plants RESTART IDENTITY").Error
}

func (r *PlantRepository) CountPlants(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PlantRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func plantError(key string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("plant %s: %w", key, repositories.ErrPlantNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("plant %s: %w", key, repositories.ErrDuplicatePlant)
	default:
		return err
	}
}
