package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const keyPrefix = "analytics:dashboard:"

// Client is the subset of go-redis used by the cache.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ ports.StatsCache = (*StatsCache)(nil)

// StatsCache stores dashboard stats as JSON with a TTL.
type StatsCache struct {
	client Client
	ttl    time.Duration
}

func NewStatsCache(client Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context, storeID string) (*domain.DashboardStats, bool, error) {
	raw, err := c.client.Get(ctx, key(storeID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached dashboard stats: %w", err)
	}
	return &stats, true, nil
}

func (c *StatsCache) Set(ctx context.Context, storeID string, stats domain.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(storeID), raw, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, storeID string) error {
	return c.client.Del(ctx, key(storeID)).Err()
}

// InvalidateOnOrderEvents drops a store's cached stats whenever one of its orders changes.
func InvalidateOnOrderEvents(cache ports.StatsCache) ordersports.EventPublisherFunc {
	return func(ctx context.Context, event ordersdomain.Event) error {
		if event == nil || event.TenantID() == "" {
			return nil
		}
		return cache.Invalidate(ctx, event.TenantID())
	}
}

func key(storeID string) string {
	return keyPrefix + storeID
}
