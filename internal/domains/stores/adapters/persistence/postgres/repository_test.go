package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	storespg "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func TestRepository_SQLiteRoundTrip(t *testing.T) {
	db, err := postgres.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	repo := storespg.NewRepository(db)
	ctx := context.Background()

	store, err := domain.NewStore("Acme", "acme")
	require.NoError(t, err)
	saved, err := repo.Create(ctx, store)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	_, err = repo.Create(ctx, &domain.Store{Name: "Copy", Slug: "acme"})
	require.ErrorIs(t, err, ports.ErrSlugTaken)

	saved.About = "Outdoor gear"
	updated, err := repo.Update(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, "Outdoor gear", updated.About)

	bySlug, err := repo.GetBySlug(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, saved.ID, bySlug.ID)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
