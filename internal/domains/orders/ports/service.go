package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// PlaceOrderInput is a shopper checkout request.
type PlaceOrderInput struct {
	StoreID        string
	Items          []domain.LineRequest
	Customer       domain.Customer
	IdempotencyKey string
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	ListOrders(ctx context.Context, storeID string, page Page) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
