package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	created  metric.Int64Counter
	searches metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("catalog.service.products_created", metric.WithDescription("Number of products created"))
		s.searches, _ = m.Int64Counter("catalog.service.searches", metric.WithDescription("Number of product searches"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: platformobs.DiscardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(
		attribute.String("store.id", filter.StoreID), attribute.Int("page.skip", filter.Skip), attribute.Int("page.take", filter.Take)))
	defer span.End()

	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products", slog.String("store.id", filter.StoreID))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Create", trace.WithAttributes(
		attribute.String("store.id", input.StoreID), attribute.String("product.sku", input.SKU)))
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.sku", input.SKU))
	}
	if s.created != nil {
		s.created.Add(ctx, 1, metric.WithAttributes(attribute.String("store.id", result.StoreID)))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "product created",
		slog.String("product.id", result.ID), slog.String("store.id", result.StoreID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()

	result, err := s.inner.Update(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", input.ID))
	}
	return result, nil
}

func (s *Service) Search(ctx context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("store.id", query.StoreID)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("store.id", query.StoreID))
	}
	if s.searches != nil {
		s.searches.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
