package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
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
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  platformobs.DiscardLogger(),
		metrics: newServiceMetrics(nil),
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

func (s *Service) CreateOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateOrder", trace.WithAttributes(
		attribute.String("store.id", input.StoreID),
		attribute.Int("order.lines", len(input.Items)),
		attribute.Bool("order.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("store.id", input.StoreID), slog.Int("order.lines", len(input.Items)))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("store.id", input.StoreID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID), attribute.String("order.total", result.Total.StringFixed(2)))
	s.metrics.recordCreated(ctx, result.StoreID)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID),
		slog.String("store.id", result.StoreID),
		slog.String("order.total", result.Total.StringFixed(2)))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", orderID), attribute.String("order.status", status)))
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status",
			slog.String("order.id", orderID), slog.String("order.status", status))
	}
	s.metrics.recordStatus(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", result.ID), slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, storeID string, page ports.Page) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders", trace.WithAttributes(
		attribute.String("store.id", storeID), attribute.Int("page.skip", page.Skip), attribute.Int("page.take", page.Take)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, storeID, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("store.id", storeID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	created       metric.Int64Counter
	statusChanged metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders placed"))
	statusChanged, _ := m.Int64Counter("orders.service.status_changed", metric.WithDescription("Number of order status updates"))
	return serviceMetrics{created: created, statusChanged: statusChanged}
}

func (m serviceMetrics) recordCreated(ctx context.Context, storeID string) {
	if m.created != nil {
		m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("store.id", storeID)))
	}
}

func (m serviceMetrics) recordStatus(ctx context.Context, status domain.Status) {
	if m.statusChanged != nil {
		m.statusChanged.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Service = (*Service)(nil)
