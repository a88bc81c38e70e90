package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/transferplan/pkg/domain/entities"
	"github.com/vsinha/transferplan/pkg/domain/repositories"
)

// ProductRepository provides in-memory product storage with monotonic ids
type ProductRepository struct {
	mu          sync.RWMutex
	products    []entities.Product
	productsMap map[entities.ProductID]int
	nextID      int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[entities.ProductID]int, expectedProducts),
		nextID:      1,
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// ListProducts returns copies of all products in id order
func (r *ProductRepository) ListProducts(_ context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		p := r.products[i]
		products = append(products, &p)
	}
	return products, nil
}

// GetProduct returns the product with the given catalog id
func (r *ProductRepository) GetProduct(_ context.Context, id int) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexOf(id)
	if index < 0 {
		return nil, fmt.Errorf("product %d: %w", id, repositories.ErrProductNotFound)
	}
	p := r.products[index]
	return &p, nil
}

// FindProduct returns the product with the given SKU
func (r *ProductRepository) FindProduct(_ context.Context, productID entities.ProductID) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[productID]
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, repositories.ErrProductNotFound)
	}
	p := r.products[index]
	return &p, nil
}

// CreateProduct stores the product under the next catalog id
func (r *ProductRepository) CreateProduct(_ context.Context, product *entities.Product) (*entities.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.productsMap[product.ProductID]; exists {
		return nil, fmt.Errorf("product %s: %w", product.ProductID, repositories.ErrDuplicateProduct)
	}

	stored := *product
	stored.ID = r.nextID
	r.nextID++
	r.productsMap[stored.ProductID] = len(r.products)
	r.products = append(r.products, stored)
	return &stored, nil
}

// UpdateProduct replaces the product stored under product.ID
func (r *ProductRepository) UpdateProduct(_ context.Context, product *entities.Product) (*entities.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(product.ID)
	if index < 0 {
		return nil, fmt.Errorf("product %d: %w", product.ID, repositories.ErrProductNotFound)
	}
	if other, exists := r.productsMap[product.ProductID]; exists && other != index {
		return nil, fmt.Errorf("product %s: %w", product.ProductID, repositories.ErrDuplicateProduct)
	}

	delete(r.productsMap, r.products[index].ProductID)
	r.products[index] = *product
	r.productsMap[product.ProductID] = index
	stored := r.products[index]
	return &stored, nil
}

// DeleteProduct removes the product with the given catalog id
func (r *ProductRepository) DeleteProduct(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return fmt.Errorf("product %d: %w", id, repositories.ErrProductNotFound)
	}
	r.products = append(r.products[:index], r.products[index+1:]...)
	r.reindex()
	return nil
}

// ClearProducts removes every product and restarts the id sequence
func (r *ProductRepository) ClearProducts(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = r.products[:0]
	r.productsMap = make(map[entities.ProductID]int)
	r.nextID = 1
	return nil
}

// CountProducts returns the number of stored products
func (r *ProductRepository) CountProducts(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products), nil
}

func (r *ProductRepository) indexOf(id int) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *ProductRepository) reindex() {
	r.productsMap = make(map[entities.ProductID]int, len(r.products))
	for i := range r.products {
		r.productsMap[r.products[i].ProductID] = i
	}
}
