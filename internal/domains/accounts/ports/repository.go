package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user email already registered")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OwnerRegistry creates a store together with its owner; either both exist afterwards or neither does.
type OwnerRegistry interface {
	RegisterOwner(ctx context.Context, store *storesdomain.Store, owner *domain.User) (*domain.User, *storesdomain.Store, error)
}

// StoreLookup reads stores for the accounts context.
type StoreLookup interface {
	GetByID(ctx context.Context, id string) (*storesdomain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*storesdomain.Store, error)
}
