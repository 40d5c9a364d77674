package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storespg "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/persistence/postgres"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

var _ ports.OwnerRegistry = (*Registry)(nil)

// Registry writes the store and its owner in one database transaction.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) RegisterOwner(ctx context.Context, store *storesdomain.Store, owner *domain.User) (*domain.User, *storesdomain.Store, error) {
	if r == nil || r.db == nil {
		return nil, nil, errors.New("postgres owner registry not configured")
	}
	var (
		savedUser  *domain.User
		savedStore *storesdomain.Store
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		savedStore, err = storespg.NewRepository(tx).Create(ctx, store)
		if err != nil {
			return err
		}
		user := *owner
		user.StoreID = savedStore.ID
		savedUser, err = NewRepository(tx).Create(ctx, &user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return savedUser, savedStore, nil
}
