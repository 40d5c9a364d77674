package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

var (
	// ErrInvalidInput signals the request violated a store invariant.
	ErrInvalidInput = errors.New("invalid store input")
	// ErrConflict signals a uniqueness violation such as a taken slug.
	ErrConflict = errors.New("store conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySlug) ||
		errors.Is(err, domain.ErrInvalidSlug) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrSlugTaken) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

func slugTaken(slug string) error {
	return fmt.Errorf("%w: %w: store slug '%s' is already taken", ErrConflict, ports.ErrSlugTaken, slug)
}
