package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const (
	DefaultTake = 10
	MaxTake     = 100
)

// Service orchestrates catalog use cases.
type Service struct {
	repo     ports.Repository
	index    ports.SearchIndex
	onChange []ports.StoreChangeFunc
	logger   *slog.Logger
}

type Option func(*Service)

// WithSearchIndex routes searches through an external index and keeps it fed on writes.
func WithSearchIndex(index ports.SearchIndex) Option {
	return func(s *Service) { s.index = index }
}

// WithStoreChangeListener registers fn to run after every successful product write.
// Listener errors are logged and never fail the write.
func WithStoreChangeListener(fn ports.StoreChangeFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.onChange = append(s.onChange, fn)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: observability.DiscardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List pages products newest first, optionally scoped to one store.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	filter.Skip, filter.Take = normalizePage(filter.Skip, filter.Take)
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a product; SKUs are unique across all stores.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.StoreID, input.Name, input.SKU, input.Price, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	product.Description = strings.TrimSpace(input.Description)
	product.ImageURL = strings.TrimSpace(input.ImageURL)

	if _, err := s.repo.GetBySKU(ctx, product.SKU); err == nil {
		return nil, skuTaken(product.SKU)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, product)
	if err != nil {
		if errors.Is(err, ports.ErrSKUTaken) {
			return nil, skuTaken(product.SKU)
		}
		return nil, mapError(err)
	}
	s.written(ctx, saved)
	return saved, nil
}

// Update applies a partial update to an existing product.
func (s *Service) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := product.Apply(input.Patch); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	s.written(ctx, saved)
	return saved, nil
}

// Search finds a store's products by name or description. When the external
// index fails the repository match is used instead.
func (s *Service) Search(ctx context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	query.Query = strings.TrimSpace(query.Query)
	if query.Query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	if strings.TrimSpace(query.StoreID) == "" {
		return nil, mapError(domain.ErrMissingStore)
	}
	query.Skip, query.Take = normalizePage(query.Skip, query.Take)

	if s.index != nil {
		products, err := s.searchIndex(ctx, query)
		if err == nil {
			return products, nil
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "search index unavailable, falling back to repository",
			slog.String("store.id", query.StoreID), slog.String("error", err.Error()))
	}
	return s.repo.Search(ctx, query.StoreID, query.Query, query.Skip, query.Take)
}

func (s *Service) searchIndex(ctx context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	ids, err := s.index.Search(ctx, query.StoreID, query.Query, query.Skip, query.Take)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		// the index may lag behind the repository
		if p, ok := found[id]; ok && p.StoreID == query.StoreID {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *Service) written(ctx context.Context, product *domain.Product) {
	s.reindex(ctx, product)
	for _, fn := range s.onChange {
		if err := fn(ctx, product.StoreID); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "store change listener failed",
				slog.String("store.id", product.StoreID), slog.String("error", err.Error()))
		}
	}
}

func (s *Service) reindex(ctx context.Context, product *domain.Product) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, product); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to index product",
			slog.String("product.id", product.ID), slog.String("error", err.Error()))
	}
}

func normalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}
	return skip, take
}

var _ ports.Service = (*Service)(nil)
