package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

// StoreWriter is the part of the in-memory store repository the registry needs.
type StoreWriter interface {
	Create(ctx context.Context, store *storesdomain.Store) (*storesdomain.Store, error)
	Delete(ctx context.Context, id string) error
}

var _ ports.OwnerRegistry = (*Registry)(nil)

// Registry creates the store first and deletes it again if the owner cannot be written.
type Registry struct {
	stores StoreWriter
	users  ports.Repository
}

func NewRegistry(stores StoreWriter, users ports.Repository) *Registry {
	return &Registry{stores: stores, users: users}
}

func (r *Registry) RegisterOwner(ctx context.Context, store *storesdomain.Store, owner *domain.User) (*domain.User, *storesdomain.Store, error) {
	savedStore, err := r.stores.Create(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	user := *owner
	user.StoreID = savedStore.ID
	savedUser, err := r.users.Create(ctx, &user)
	if err != nil {
		if rbErr := r.stores.Delete(ctx, savedStore.ID); rbErr != nil && !errors.Is(rbErr, storesports.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w (store rollback failed: %v)", err, rbErr)
		}
		return nil, nil, err
	}
	return savedUser, savedStore, nil
}
