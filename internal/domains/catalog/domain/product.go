package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptySKU      = errors.New("product sku is required")
	ErrMissingStore  = errors.New("product store is required")
	ErrNegativePrice = errors.New("product price must not be negative")
	ErrInvalidPrice  = errors.New("product price must have at most two decimal places")
	ErrNegativeStock = errors.New("product stock must not be negative")
)

// Product is a sellable item owned by a single store.
type Product struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
	Stock       int
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch carries a partial product update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	Active      *bool
}

// NewProduct builds an active product and validates it.
func NewProduct(storeID, name, sku string, price decimal.Decimal, stock int) (*Product, error) {
	p := &Product{
		StoreID: strings.TrimSpace(storeID),
		Name:    strings.TrimSpace(name),
		SKU:     strings.TrimSpace(sku),
		Price:   price,
		Stock:   stock,
		Active:  true,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply merges the patch and re-validates; the product is unchanged on error.
func (p *Product) Apply(patch Patch) error {
	next := *p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if patch.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Active != nil {
		next.Active = *patch.Active
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) Validate() error {
	switch {
	case p.StoreID == "":
		return ErrMissingStore
	case p.Name == "":
		return ErrEmptyName
	case p.SKU == "":
		return ErrEmptySKU
	case p.Price.IsNegative():
		return ErrNegativePrice
	case !p.Price.Equal(p.Price.Round(2)):
		// order totals are exact sums of cent prices
		return ErrInvalidPrice
	case p.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}
