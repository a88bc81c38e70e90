package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
)

// ProductRepository stores products in the products table
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*entities.Product, len(records))
	for i := range records {
		products[i] = records[i].toEntity()
	}
	return products, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int) (*entities.Product, error) {
	var record ProductRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, productError(fmt.Sprint(id), err)
	}
	return record.toEntity(), nil
}

func (r *ProductRepository) FindProduct(ctx context.Context, productID entities.ProductID) (*entities.Product, error) {
	var record ProductRecord
	err := r.db.WithContext(ctx).Where("product_id = ?", string(productID)).First(&record).Error
	if err != nil {
		return nil, productError(string(productID), err)
	}
	return record.toEntity(), nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	record := productRecord(product)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, productError(string(product.ProductID), err)
	}
	return record.toEntity(), nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if _, err := r.GetProduct(ctx, product.ID); err != nil {
		return nil, err
	}
	record := productRecord(product)
	if err := r.db.WithContext(ctx).Omit("created_at").Save(record).Error; err != nil {
		return nil, productError(string(product.ProductID), err)
	}
	return record.toEntity(), nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&ProductRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, repositories.ErrProductNotFound)
	}
	return nil
}

// ClearProducts empties the table and restarts the id sequence
func (r *ProductRepository) ClearProducts(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("TRUNCATE TABLE products RESTART IDENTITY").Error
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func productError(key string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("product %s: %w", key, repositories.ErrProductNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("product %s: %w", key, repositories.ErrDuplicateProduct)
	default:
		return err
	}
}
