package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
)

// SessionStore tracks issued tokens. A token is valid only while its session is active.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Active(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) error
}
