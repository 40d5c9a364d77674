package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

// Service exposes account use cases.
type Service struct {
	users    ports.Repository
	stores   ports.StoreLookup
	registry ports.OwnerRegistry
	tokens   ports.TokenIssuer
	sessions ports.SessionStore
}

func NewService(users ports.Repository, stores ports.StoreLookup, registry ports.OwnerRegistry, tokens ports.TokenIssuer, sessions ports.SessionStore) *Service {
	return &Service{users: users, stores: stores, registry: registry, tokens: tokens, sessions: sessions}
}

// Register creates a store and its owner atomically and signs the owner in.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	owner, err := domain.NewOwner(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	store, err := storesdomain.NewStore(input.StoreName, storesdomain.Slugify(input.StoreName))
	if err != nil {
		return nil, mapError(err)
	}

	switch _, err := s.users.GetByEmail(ctx, owner.Email); {
	case err == nil:
		return nil, emailTaken()
	case !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	switch _, err := s.stores.GetBySlug(ctx, store.Slug); {
	case err == nil:
		return nil, slugTaken(store.Slug)
	case !errors.Is(err, storesports.ErrNotFound):
		return nil, err
	}

	user, savedStore, err := s.registry.RegisterOwner(ctx, store, owner)
	if err != nil {
		if errors.Is(err, storesports.ErrSlugTaken) {
			return nil, slugTaken(store.Slug)
		}
		return nil, mapError(err)
	}
	token, err := s.signIn(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user, Store: savedStore}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errBadCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, errBadCredentials
	}
	store, err := s.stores.GetByID(ctx, user.StoreID)
	if err != nil && !errors.Is(err, storesports.ErrNotFound) {
		return nil, err
	}
	token, err := s.signIn(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user, Store: store}, nil
}

// Logout revokes the token the principal authenticated with.
func (s *Service) Logout(ctx context.Context, principal domain.Principal) error {
	if strings.TrimSpace(principal.TokenID) == "" {
		return fmt.Errorf("%w: token id missing", ErrUnauthenticated)
	}
	return s.sessions.Revoke(ctx, principal.TokenID)
}

func (s *Service) Me(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a bearer token and that its session has not been revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}
	principal, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, mapError(err)
	}
	active, err := s.sessions.Active(ctx, principal.TokenID)
	if err != nil {
		return domain.Principal{}, err
	}
	if !active {
		return domain.Principal{}, fmt.Errorf("%w: token has been revoked", ErrUnauthenticated)
	}
	return principal, nil
}

func (s *Service) signIn(ctx context.Context, user *domain.User) (string, error) {
	token, principal, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	session := domain.Session{ID: principal.TokenID, UserID: user.ID, ExpiresAt: principal.ExpiresAt}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("record session: %w", err)
	}
	return token, nil
}

var _ ports.Service = (*Service)(nil)
