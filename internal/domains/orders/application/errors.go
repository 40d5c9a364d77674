package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals a malformed checkout or status request.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals the request cannot be applied to the current state.
	ErrConflict = errors.New("order conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrMissingStore),
		errors.Is(err, domain.ErrMissingProduct):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrTransitionNotAllowed),
		errors.Is(err, ports.ErrInsufficientStock),
		errors.Is(err, ports.ErrStatusChanged),
		errors.Is(err, ports.ErrIdempotencyConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}

func productNotFound(id string) error {
	return fmt.Errorf("%w: product %s", ports.ErrProductNotFound, id)
}
