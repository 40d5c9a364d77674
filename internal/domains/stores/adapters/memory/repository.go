package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory store persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	stores map[string]*domain.Store
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{stores: map[string]*domain.Store{}, now: time.Now}
}

func (r *Repository) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	clone := *store
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugOwnerLocked(clone.Slug) != "" {
		return nil, ports.ErrSlugTaken
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := r.now().UTC()
	clone.CreatedAt, clone.UpdatedAt = now, now
	r.stores[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) Update(_ context.Context, store *domain.Store) (*domain.Store, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	clone := *store
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.stores[clone.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner := r.slugOwnerLocked(clone.Slug); owner != "" && owner != clone.ID {
		return nil, ports.ErrSlugTaken
	}
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.stores[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *store
	return &clone, nil
}

func (r *Repository) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := r.slugOwnerLocked(slug)
	if id == "" {
		return nil, ports.ErrNotFound
	}
	clone := *r.stores[id]
	return &clone, nil
}

// Delete removes a store; used to roll back a registration whose owner could not be created.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.stores, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Store, 0, len(r.stores))
	for _, store := range r.stores {
		clone := *store
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *Repository) slugOwnerLocked(slug string) string {
	for id, store := range r.stores {
		if store.Slug == slug {
			return id
		}
	}
	return ""
}
