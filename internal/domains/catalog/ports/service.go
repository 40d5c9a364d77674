package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

type CreateProductInput struct {
	StoreID     string
	Name        string
	Price       decimal.Decimal
	SKU         string
	Stock       int
	Description string
	ImageURL    string
}

type UpdateProductInput struct {
	ID    string
	Patch domain.Patch
}

type SearchQuery struct {
	StoreID string
	Query   string
	Skip    int
	Take    int
}

// StoreChangeFunc is called after a write changes a store's catalog.
type StoreChangeFunc func(ctx context.Context, storeID string) error

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	Search(ctx context.Context, query SearchQuery) ([]*domain.Product, error)
}
