package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductCatalog resolves products referenced by order lines.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*domain.ProductRef, error)
	// GetProducts returns the products that exist, keyed by id.
	GetProducts(ctx context.Context, ids []string) (map[string]*domain.ProductRef, error)
}
