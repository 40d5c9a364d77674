package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

var (
	// ErrInvalidInput signals a malformed analytics request.
	ErrInvalidInput = errors.New("invalid analytics input")
	// ErrNarratorUnavailable is returned when no narrator is wired.
	ErrNarratorUnavailable = errors.New("sales narrator not configured")
)

// Service computes store analytics on demand.
type Service struct {
	reader   ports.SalesReader
	cache    ports.StatsCache
	narrator ports.SalesNarrator
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
}

type Option func(*Service)

func WithStatsCache(cache ports.StatsCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithNarrator(narrator ports.SalesNarrator) Option {
	return func(s *Service) { s.narrator = narrator }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone used to bucket chart days.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
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

func NewService(reader ports.SalesReader, opts ...Option) *Service {
	s := &Service{
		reader:   reader,
		now:      time.Now,
		location: time.UTC,
		logger:   platformobs.DiscardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// DashboardStats returns lifetime revenue, order and stock figures, served from cache when possible.
func (s *Service) DashboardStats(ctx context.Context, storeID string) (domain.DashboardStats, error) {
	if err := validateStore(storeID); err != nil {
		return domain.DashboardStats{}, err
	}
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, storeID)
		if err != nil {
			s.logger.WarnContext(ctx, "dashboard cache read failed", slog.String("store.id", storeID), slog.String("error", err.Error()))
		} else if ok {
			return *cached, nil
		}
	}
	orders, products, err := s.load(ctx, storeID)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats := domain.ComputeDashboard(orders, products)
	if s.cache != nil {
		if err := s.cache.Set(ctx, storeID, stats); err != nil {
			s.logger.WarnContext(ctx, "dashboard cache write failed", slog.String("store.id", storeID), slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

// SalesData returns totals, best sellers and low stock labels.
func (s *Service) SalesData(ctx context.Context, storeID string) (domain.SalesData, error) {
	if err := validateStore(storeID); err != nil {
		return domain.SalesData{}, err
	}
	orders, products, err := s.load(ctx, storeID)
	if err != nil {
		return domain.SalesData{}, err
	}
	return domain.ComputeSalesData(orders, products), nil
}

// SalesChart returns seven zero-filled daily points ending today in the reporting timezone.
func (s *Service) SalesChart(ctx context.Context, storeID string) ([]domain.ChartPoint, error) {
	if err := validateStore(storeID); err != nil {
		return nil, err
	}
	now := s.now()
	orders, err := s.reader.OrdersSince(ctx, storeID, domain.ChartWindowStart(now, s.location))
	if err != nil {
		return nil, fmt.Errorf("load chart orders: %w", err)
	}
	return domain.BuildChart(orders, now, s.location), nil
}

// SalesSummary narrates the store's sales data.
func (s *Service) SalesSummary(ctx context.Context, storeID string) (string, error) {
	if s.narrator == nil {
		return "", ErrNarratorUnavailable
	}
	data, err := s.SalesData(ctx, storeID)
	if err != nil {
		return "", err
	}
	return s.narrator.SalesSummary(ctx, data)
}

func (s *Service) load(ctx context.Context, storeID string) ([]domain.OrderFact, []domain.ProductFact, error) {
	orders, err := s.reader.Orders(ctx, storeID)
	if err != nil {
		return nil, nil, fmt.Errorf("load orders: %w", err)
	}
	products, err := s.reader.Products(ctx, storeID)
	if err != nil {
		return nil, nil, fmt.Errorf("load products: %w", err)
	}
	return orders, products, nil
}

func validateStore(storeID string) error {
	if strings.TrimSpace(storeID) == "" {
		return fmt.Errorf("%w: store id is required", ErrInvalidInput)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
