package mapper

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/money"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID          string      `json:"id"`
	StoreID     string      `json:"storeId"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Price       json.Number `json:"price"`
	SKU         string      `json:"sku"`
	Stock       int         `json:"stock"`
	ImageURL    *string     `json:"imageUrl"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateProduct is the inbound payload of createProduct. Price accepts a JSON number or string.
type CreateProduct struct {
	Name        string           `json:"name" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	SKU         string           `json:"sku" binding:"required"`
	StoreID     string           `json:"storeId" binding:"required"`
	Stock       int              `json:"stock"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
}

// UpdateProduct preserves field presence so absent fields stay untouched.
type UpdateProduct struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"imageUrl"`
	Active      *bool            `json:"active"`
}

// ToCreateInput maps the create payload onto the service input.
func ToCreateInput(payload CreateProduct) ports.CreateProductInput {
	input := ports.CreateProductInput{
		StoreID:     payload.StoreID,
		Name:        payload.Name,
		SKU:         payload.SKU,
		Stock:       payload.Stock,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
	}
	if payload.Price != nil {
		input.Price = *payload.Price
	}
	return input
}

// ToUpdateInput maps the patch payload onto the service input.
func ToUpdateInput(id string, payload UpdateProduct) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		ID: id,
		Patch: domain.Patch{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       payload.Price,
			Stock:       payload.Stock,
			ImageURL:    payload.ImageURL,
			Active:      payload.Active,
		},
	}
}

// FromDomainProduct converts a domain product into its transport form.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Name:        product.Name,
		Description: optional(product.Description),
		Price:       money.JSON(product.Price),
		SKU:         product.SKU,
		Stock:       product.Stock,
		ImageURL:    optional(product.ImageURL),
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromDomainProducts converts a slice of products.
func FromDomainProducts(products []*domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
