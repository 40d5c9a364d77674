package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	storesdomain "github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

var (
	// ErrInvalidInput signals the request violated an account invariant.
	ErrInvalidInput = errors.New("invalid account input")
	// ErrConflict signals an email or store slug that is already registered.
	ErrConflict = errors.New("account conflict")
	// ErrUnauthenticated wraps failed logins and unusable tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, storesdomain.ErrEmptyName) ||
		errors.Is(err, storesdomain.ErrEmptySlug) ||
		errors.Is(err, storesdomain.ErrInvalidSlug) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrEmailTaken) {
		return emailTaken()
	}
	if errors.Is(err, ports.ErrInvalidToken) {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return err
}

func emailTaken() error {
	return fmt.Errorf("%w: %w: user already exists with this email", ErrConflict, ports.ErrEmailTaken)
}

func slugTaken(slug string) error {
	return fmt.Errorf("%w: %w: store slug '%s' is already taken", ErrConflict, storesports.ErrSlugTaken, slug)
}

var errBadCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
