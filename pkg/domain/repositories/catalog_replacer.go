package repositories

import (
	"context"

	"github.com/vsinha/transferplan/pkg/domain/entities"
)

// CatalogReplacer swaps both catalogs for new contents as one unit. When it
// returns an error neither catalog has changed.
type CatalogReplacer interface {
	ReplaceCatalog(ctx context.Context, products []*entities.Product, plants []*entities.Plant) error
}
