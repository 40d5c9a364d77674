package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

var (
	ErrNotFound  = errors.New("store not found")
	ErrSlugTaken = errors.New("store slug already taken")
)

// Repository persists stores. Create and Update report ErrSlugTaken on slug collisions.
type Repository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	Update(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}
