package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
)

type fakeClient struct {
	keys map[string]time.Duration
}

func (f *fakeClient) Set(_ context.Context, key string, _ any, ttl time.Duration) *goredis.StatusCmd {
	f.keys[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Exists(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, k := range keys {
		delete(f.keys, k)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}

func TestSessionStore(t *testing.T) {
	client := &fakeClient{keys: map[string]time.Duration{}}
	store := NewSessionStore(client)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "jti", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	assert.Equal(t, time.Hour, client.keys["session:jti"])

	active, err := store.Active(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, store.Revoke(ctx, "jti"))
	active, err = store.Active(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, store.Save(ctx, domain.Session{ID: "old", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}))
	assert.NotContains(t, client.keys, "session:old")
}
