package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// StockLedger decrements stock for all quantities or none. A non-empty
// shortProductID names a product that cannot cover its quantity.
type StockLedger interface {
	ReserveStock(ctx context.Context, quantities map[string]int) (shortProductID string, err error)
}

// Repository keeps orders in memory.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	ledger StockLedger
	now    func() time.Time
}

// NewRepository builds an in-memory order store. The ledger may be nil when stock is never reserved.
func NewRepository(ledger StockLedger) *Repository {
	return &Repository{orders: map[string]*domain.Order{}, ledger: ledger, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order, opts ports.CreateOptions) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)

	r.mu.Lock()
	defer r.mu.Unlock()
	if opts.ReserveStock {
		if r.ledger == nil {
			return nil, errors.New("stock ledger not configured")
		}
		quantities := map[string]int{}
		for _, item := range clone.Items {
			quantities[item.ProductID] += item.Quantity
		}
		short, err := r.ledger.ReserveStock(ctx, quantities)
		if err != nil {
			return nil, err
		}
		if short != "" {
			return nil, fmt.Errorf("%w for product %s", ports.ErrInsufficientStock, short)
		}
	}

	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := r.now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	for i := range clone.Items {
		if clone.Items[i].ID == "" {
			clone.Items[i].ID = uuid.NewString()
		}
		clone.Items[i].OrderID = clone.ID
		clone.Items[i].Product = nil
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByStore(_ context.Context, storeID string, page ports.Page) ([]*domain.Order, error) {
	list := r.collect(func(o *domain.Order) bool { return o.StoreID == storeID })
	skip := page.Skip
	if skip < 0 {
		skip = 0
	}
	if skip >= len(list) {
		return []*domain.Order{}, nil
	}
	list = list[skip:]
	if page.Take > 0 && page.Take < len(list) {
		list = list[:page.Take]
	}
	return list, nil
}

func (r *Repository) ListByStoreSince(_ context.Context, storeID string, since time.Time) ([]*domain.Order, error) {
	return r.collect(func(o *domain.Order) bool {
		return o.StoreID == storeID && !o.CreatedAt.Before(since)
	}), nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, from, to domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if order.Status != from {
		return nil, ports.ErrStatusChanged
	}
	order.Status = to
	order.UpdatedAt = r.now().UTC()
	return cloneOrder(order), nil
}

func (r *Repository) collect(match func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if match(o) {
			list = append(list, cloneOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = make([]domain.Item, len(o.Items))
	copy(clone.Items, o.Items)
	for i := range clone.Items {
		if p := clone.Items[i].Product; p != nil {
			ref := *p
			clone.Items[i].Product = &ref
		}
	}
	return &clone
}
