package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/stores/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/observability/service"

// Service decorates the stores service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
	updated metric.Int64Counter
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
		s.created, _ = m.Int64Counter("stores.service.created", metric.WithDescription("Number of stores created"))
		s.updated, _ = m.Int64Counter("stores.service.updated", metric.WithDescription("Number of store settings updates"))
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

func (s *Service) CreateStore(ctx context.Context, name, slug string) (*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.CreateStore", trace.WithAttributes(attribute.String("store.slug", slug)))
	defer span.End()

	result, err := s.inner.CreateStore(ctx, name, slug)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create store", slog.String("store.slug", slug))
	}
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	s.logInfo(ctx, "store created", slog.String("store.id", result.ID), slog.String("store.slug", result.Slug))
	return result, nil
}

func (s *Service) UpdateStore(ctx context.Context, input ports.UpdateStoreInput) (*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.UpdateStore", trace.WithAttributes(attribute.String("store.id", input.ID)))
	defer span.End()

	result, err := s.inner.UpdateStore(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update store", slog.String("store.id", input.ID))
	}
	if s.updated != nil {
		s.updated.Add(ctx, 1)
	}
	s.logInfo(ctx, "store updated", slog.String("store.id", result.ID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.GetByID", trace.WithAttributes(attribute.String("store.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load store", slog.String("store.id", id))
	}
	return result, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.GetBySlug", trace.WithAttributes(attribute.String("store.slug", slug)))
	defer span.End()

	result, err := s.inner.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load storefront", slog.String("store.slug", slug))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "StoresService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stores")
	}
	span.SetAttributes(attribute.Int("stores.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
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
