package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	counts map[string]int64
	ttls   map[string]time.Duration
}

func (f *fakeClient) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeClient) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeClient) TTL(_ context.Context, key string) *redis.DurationCmd {
	return redis.NewDurationResult(f.ttls[key]/2, nil)
}

func TestRedisLimiter(t *testing.T) {
	client := &fakeClient{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
	limiter := NewRedisLimiter(client, "login:", 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, time.Minute, client.ttls["login:10.0.0.1"])

	ok, retry, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 30*time.Second, retry)

	ok, _, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}
