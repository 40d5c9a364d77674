package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func newRepo(t *testing.T) *catalogpg.Repository {
	t.Helper()
	db, err := postgres.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	return catalogpg.NewRepository(db)
}

func create(t *testing.T, repo *catalogpg.Repository, storeID, name, sku, price string, createdAt time.Time) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(storeID, name, sku, decimal.RequireFromString(price), 3)
	require.NoError(t, err)
	p.CreatedAt = createdAt
	saved, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func TestRepository_CreateListAndSearch(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tent := create(t, repo, "s1", "Alpine Tent", "T-1", "129.99", base)
	stove := create(t, repo, "s1", "Camp Stove", "S-1", "45.50", base.Add(time.Minute))
	create(t, repo, "s2", "Tent 100%", "T-2", "10.00", base)

	list, err := repo.List(ctx, ports.ListFilter{StoreID: "s1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, stove.ID, list[0].ID)
	require.True(t, list[1].Price.Equal(decimal.RequireFromString("129.99")))

	found, err := repo.Search(ctx, "s1", "tent", 0, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, tent.ID, found[0].ID)

	literal, err := repo.Search(ctx, "s2", "100%", 0, 10)
	require.NoError(t, err)
	require.Len(t, literal, 1)

	byIDs, err := repo.GetByIDs(ctx, []string{tent.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
}

func TestRepository_DuplicateSKUAndUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	p := create(t, repo, "s1", "Tent", "T-1", "10.00", time.Now())

	dup, err := domain.NewProduct("s1", "Other", "T-1", decimal.Zero, 0)
	require.NoError(t, err)
	_, err = repo.Create(ctx, dup)
	require.ErrorIs(t, err, ports.ErrSKUTaken)

	p.Active = false
	p.Stock = 0
	updated, err := repo.Update(ctx, p)
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.Zero(t, updated.Stock)

	_, err = repo.GetBySKU(ctx, "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
