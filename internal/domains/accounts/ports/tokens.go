package ports

import (
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	// Issue mints a token for the user; the returned principal carries the token id and expiry.
	Issue(user *domain.User) (string, domain.Principal, error)
	Parse(token string) (domain.Principal, error)
}
