//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	orderspg "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	"github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

func setupOrdersPostgresContainer(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := postgres.Connect(ctx, dsn, postgres.DefaultPool)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, migrations.Run(db))
	return db
}

func TestPostgresRepository_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupOrdersPostgresContainer(t)
	product := seedProduct(t, db, "LIMITED", 3)
	repo := orderspg.NewRepository(db)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		short     int
	)
	pending := make([]*domain.Order, 8)
	for i := range pending {
		pending[i] = newOrder(t, product.ID, 1, time.Time{})
	}
	for _, order := range pending {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, order, ports.CreateOptions{ReserveStock: true})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ports.ErrInsufficientStock):
				short++
			default:
				t.Errorf("unexpected checkout error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 5, short)
	stored, err := catalogpg.NewRepository(db).GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Stock)
	orders, err := repo.ListByStore(ctx, "s1", ports.Page{})
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestPostgresRepository_StatusCompareAndSet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupOrdersPostgresContainer(t)
	product := seedProduct(t, db, "CAS", 5)
	repo := orderspg.NewRepository(db)
	ctx := context.Background()

	order, err := repo.Create(ctx, newOrder(t, product.ID, 2, time.Time{}), ports.CreateOptions{})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("25.00")))

	_, err = repo.UpdateStatus(ctx, order.ID, domain.StatusPending, domain.StatusProcessing)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, order.ID, domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, ports.ErrStatusChanged)

	loaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, loaded.Status)
}
