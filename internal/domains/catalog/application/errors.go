package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var (
	ErrInvalidInput = errors.New("invalid product input")
	ErrConflict     = errors.New("product conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySKU) ||
		errors.Is(err, domain.ErrMissingStore) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func skuTaken(sku string) error {
	return fmt.Errorf("%w: %w: product with SKU '%s' already exists.", ErrConflict, ports.ErrSKUTaken, sku)
}
