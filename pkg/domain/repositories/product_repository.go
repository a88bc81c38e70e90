package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPlantNotFound    = errors.New("plant not found")
	ErrDuplicatePlant   = errors.New("plant already exists")
	ErrDuplicateProduct = errors.New("product already exists")
)

// ProductRepository provides access to the product catalog.
// List returns products in catalog (id) order.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*entities.Product, error)
	GetProduct(ctx context.Context, id int) (*entities.Product, error)
	FindProduct(ctx context.Context, productID entities.ProductID) (*entities.Product, error)
	CreateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	UpdateProduct(ctx context.Context, product *entities.Product) (*entities.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ClearProducts(ctx context.Context) error
	CountProducts(ctx context.Context) (int, error)
}
