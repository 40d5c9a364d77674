package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

type fakeClient struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func TestStatsCache_RoundTrip(t *testing.T) {
	client := newFakeClient()
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	stats := domain.DashboardStats{TotalRevenue: decimal.RequireFromString("12.34"), TotalOrders: 2,
		AverageOrderValue: decimal.RequireFromString("6.17"), LowStockCount: 1, TotalProducts: 3}
	require.NoError(t, cache.Set(ctx, "s1", stats))
	assert.Equal(t, time.Minute, client.ttls["analytics:dashboard:s1"])

	got, ok, err := cache.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.TotalRevenue.Equal(stats.TotalRevenue))
	assert.Equal(t, 3, got.TotalProducts)

	require.NoError(t, cache.Invalidate(ctx, "s1"))
	_, ok, err = cache.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_ReadErrorSurfaces(t *testing.T) {
	client := newFakeClient()
	client.getErr = errors.New("connection refused")
	_, _, err := NewStatsCache(client, time.Minute).Get(context.Background(), "s1")
	require.ErrorContains(t, err, "connection refused")
}

func TestInvalidateOnOrderEvents(t *testing.T) {
	client := newFakeClient()
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "s1", domain.DashboardStats{}))

	publish := InvalidateOnOrderEvents(cache)
	err := publish.Publish(ctx, ordersdomain.OrderStatusChanged{OrderID: "o1", StoreID: "s1", FromStatus: "PENDING", ToStatus: "SHIPPED"})
	require.NoError(t, err)
	assert.NotContains(t, client.values, "analytics:dashboard:s1")
}
