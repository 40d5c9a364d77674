package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog. It also acts as the stock ledger for in-memory order placement.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}, now: time.Now}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == clone.SKU {
			return nil, ports.ErrSKUTaken
		}
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	// distinct timestamps keep newest-first ordering stable for rapid inserts
	now := r.now().UTC()
	for _, p := range r.products {
		if !now.After(p.CreatedAt) {
			now = p.CreatedAt.Add(time.Microsecond)
		}
	}
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	for id, p := range r.products {
		if id != clone.ID && p.SKU == clone.SKU {
			return nil, ports.ErrSKUTaken
		}
	}
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *Repository) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) GetByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	return r.collect(func(p *domain.Product) bool {
		return filter.StoreID == "" || p.StoreID == filter.StoreID
	}, filter.Skip, filter.Take), nil
}

func (r *Repository) Search(_ context.Context, storeID, query string, skip, take int) ([]*domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	return r.collect(func(p *domain.Product) bool {
		if p.StoreID != storeID {
			return false
		}
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}, skip, take), nil
}

// ReserveStock decrements stock for every entry or for none. A non-empty
// shortProductID names the first product, by id, that cannot cover its quantity.
func (r *Repository) ReserveStock(_ context.Context, quantities map[string]int) (shortProductID string, err error) {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		p, ok := r.products[id]
		if !ok {
			return "", ports.ErrNotFound
		}
		if p.Stock < quantities[id] {
			return id, nil
		}
	}
	now := r.now().UTC()
	for _, id := range ids {
		p := r.products[id]
		p.Stock -= quantities[id]
		p.UpdatedAt = now
	}
	return "", nil
}

func (r *Repository) collect(match func(*domain.Product) bool, skip, take int) []*domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0)
	for _, p := range r.products {
		if match(p) {
			clone := *p
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return page(list, skip, take)
}

func page(list []*domain.Product, skip, take int) []*domain.Product {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(list) {
		return []*domain.Product{}
	}
	list = list[skip:]
	if take > 0 && take < len(list) {
		list = list[:take]
	}
	return list
}
