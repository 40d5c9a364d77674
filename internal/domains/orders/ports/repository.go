package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStatusChanged reports that a compare-and-set status write lost a race.
	ErrStatusChanged = errors.New("order status changed concurrently")
)

// CreateOptions tunes how an order is written.
type CreateOptions struct {
	// ReserveStock decrements product stock in the same transaction as the order.
	ReserveStock bool
}

// Page selects a window of orders, newest first. Take <= 0 returns all.
type Page struct {
	Skip int
	Take int
}

// Repository persists orders together with their items.
// Returned items carry no product reference; callers hydrate them.
type Repository interface {
	// Create writes the order and every item atomically, assigning ids and timestamps.
	Create(ctx context.Context, order *domain.Order, opts CreateOptions) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID string, page Page) ([]*domain.Order, error)
	ListByStoreSince(ctx context.Context, storeID string, since time.Time) ([]*domain.Order, error)
	// UpdateStatus sets the status only if it still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) (*domain.Order, error)
}
