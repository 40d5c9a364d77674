package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
)

// Service orchestrates store use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the store service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateStore registers a new tenant with a unique slug.
func (s *Service) CreateStore(ctx context.Context, name, slug string) (*domain.Store, error) {
	store, err := domain.NewStore(name, slug)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureSlugFree(ctx, store.Slug, ""); err != nil {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, store)
	if err != nil {
		if errors.Is(err, ports.ErrSlugTaken) {
			return nil, slugTaken(store.Slug)
		}
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateStore applies a partial settings update.
func (s *Service) UpdateStore(ctx context.Context, input ports.UpdateStoreInput) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		if err := store.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Slug != nil && *input.Slug != store.Slug {
		if err := store.ChangeSlug(*input.Slug); err != nil {
			return nil, mapError(err)
		}
		if err := s.ensureSlugFree(ctx, store.Slug, store.ID); err != nil {
			return nil, err
		}
	}
	store.ApplyProfile(input.Profile)
	saved, err := s.repo.Update(ctx, store)
	if err != nil {
		if errors.Is(err, ports.ErrSlugTaken) {
			return nil, slugTaken(store.Slug)
		}
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a store by identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return store, nil
}

// GetBySlug loads a public storefront by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	store, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapError(err)
	}
	return store, nil
}

// List returns every store.
func (s *Service) List(ctx context.Context) ([]*domain.Store, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return stores, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug, ownerID string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return slugTaken(slug)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
