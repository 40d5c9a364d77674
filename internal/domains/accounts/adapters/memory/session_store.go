package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.ID, session)
	return nil
}

func (s *SessionStore) Active(_ context.Context, id string) (bool, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return false, nil
	}
	session := v.(domain.Session)
	if !session.ExpiresAt.IsZero() && !s.now().Before(session.ExpiresAt) {
		s.sessions.Delete(id)
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) Revoke(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}
