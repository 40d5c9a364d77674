package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

const keyPrefix = "session:"

// Client is the subset of go-redis used by the session store.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps one key per issued token, expiring with the token.
type SessionStore struct {
	client Client
	now    func() time.Time
}

func NewSessionStore(client Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if session.ID == "" {
		return errors.New("session id is required")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+session.ID, session.UserID, ttl).Err()
}

func (s *SessionStore) Active(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
