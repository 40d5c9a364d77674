package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
)

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	StoreName string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  *domain.User
	Store *storesdomain.Store
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, principal domain.Principal) error
	Me(ctx context.Context, principal domain.Principal) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}
