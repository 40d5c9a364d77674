package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrSKUTaken = errors.New("product sku already exists")
)

// ListFilter pages products newest first. Take <= 0 returns every match.
type ListFilter struct {
	StoreID string
	Skip    int
	Take    int
}

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	// GetByIDs returns the products that exist, keyed by id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, error)
	// Search matches the query as a case-insensitive substring of name or description.
	Search(ctx context.Context, storeID, query string, skip, take int) ([]*domain.Product, error)
}

// SearchIndex is an external full-text index over products.
type SearchIndex interface {
	Index(ctx context.Context, product *domain.Product) error
	// Search returns matching product ids in relevance order.
	Search(ctx context.Context, storeID, query string, skip, take int) ([]string, error)
}
