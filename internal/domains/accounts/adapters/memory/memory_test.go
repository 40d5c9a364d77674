package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesmemory "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/memory"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

func newOwner(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewOwner(email, "secret1", "Owner")
	require.NoError(t, err)
	return user
}

func TestRepository_UniqueEmail(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	user := newOwner(t, "a@b.c")
	user.StoreID = "s1"

	saved, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := repo.GetByEmail(ctx, "A@B.C")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	dup := newOwner(t, "a@b.c")
	dup.StoreID = "s2"
	_, err = repo.Create(ctx, dup)
	require.ErrorIs(t, err, ports.ErrEmailTaken)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

type failingUsers struct{ ports.Repository }

func (failingUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("disk full")
}

func TestRegistry_RollsBackStoreWhenOwnerFails(t *testing.T) {
	ctx := context.Background()
	stores := storesmemory.NewRepository()
	store, err := storesdomain.NewStore("Shop", "shop")
	require.NoError(t, err)

	_, _, err = NewRegistry(stores, failingUsers{}).RegisterOwner(ctx, store, newOwner(t, "a@b.c"))
	require.ErrorContains(t, err, "disk full")

	list, err := stores.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegistry_LinksOwnerToStore(t *testing.T) {
	ctx := context.Background()
	stores := storesmemory.NewRepository()
	store, err := storesdomain.NewStore("Shop", "shop")
	require.NoError(t, err)

	user, savedStore, err := NewRegistry(stores, NewRepository()).RegisterOwner(ctx, store, newOwner(t, "a@b.c"))
	require.NoError(t, err)
	assert.Equal(t, savedStore.ID, user.StoreID)
}

func TestSessionStore_ExpiryAndRevoke(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, domain.Session{ID: "t1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.Session{ID: "t2", UserID: "u1", ExpiresAt: now}))

	active, err := store.Active(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, active)

	active, err = store.Active(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, store.Revoke(ctx, "t1"))
	active, err = store.Active(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, active)
}
