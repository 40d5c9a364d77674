package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

// UpdateStoreInput is a partial update; nil fields are left untouched.
type UpdateStoreInput struct {
	ID      string
	Name    *string
	Slug    *string
	Profile domain.Profile
}

// Service exposes store use cases to adapters.
type Service interface {
	CreateStore(ctx context.Context, name, slug string) (*domain.Store, error)
	UpdateStore(ctx context.Context, input UpdateStoreInput) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}
