package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/observability/service"

// Service decorates analytics queries with spans and a per-report counter.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	reports metric.Int64Counter
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
		if m != nil {
			s.reports, _ = m.Int64Counter("analytics.service.reports", metric.WithDescription("Number of analytics reports served"))
		}
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, logger: platformobs.DiscardLogger()}
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

func (s *Service) DashboardStats(ctx context.Context, storeID string) (domain.DashboardStats, error) {
	ctx, span := s.start(ctx, "AnalyticsService.DashboardStats", storeID)
	defer span.End()

	stats, err := s.inner.DashboardStats(ctx, storeID)
	if err != nil {
		return stats, s.handleError(ctx, span, err, "failed to compute dashboard stats", storeID)
	}
	span.SetAttributes(attribute.Int("orders.count", stats.TotalOrders), attribute.String("revenue.total", stats.TotalRevenue.StringFixed(2)))
	s.record(ctx, "dashboard")
	return stats, nil
}

func (s *Service) SalesData(ctx context.Context, storeID string) (domain.SalesData, error) {
	ctx, span := s.start(ctx, "AnalyticsService.SalesData", storeID)
	defer span.End()

	data, err := s.inner.SalesData(ctx, storeID)
	if err != nil {
		return data, s.handleError(ctx, span, err, "failed to compute sales data", storeID)
	}
	s.record(ctx, "sales_data")
	return data, nil
}

func (s *Service) SalesChart(ctx context.Context, storeID string) ([]domain.ChartPoint, error) {
	ctx, span := s.start(ctx, "AnalyticsService.SalesChart", storeID)
	defer span.End()

	points, err := s.inner.SalesChart(ctx, storeID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build sales chart", storeID)
	}
	s.record(ctx, "sales_chart")
	return points, nil
}

func (s *Service) SalesSummary(ctx context.Context, storeID string) (string, error) {
	ctx, span := s.start(ctx, "AnalyticsService.SalesSummary", storeID)
	defer span.End()

	summary, err := s.inner.SalesSummary(ctx, storeID)
	if err != nil {
		return "", s.handleError(ctx, span, err, "failed to generate sales summary", storeID)
	}
	s.record(ctx, "sales_summary")
	return summary, nil
}

func (s *Service) start(ctx context.Context, name, storeID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("store.id", storeID)))
}

func (s *Service) record(ctx context.Context, report string) {
	if s.reports != nil {
		s.reports.Add(ctx, 1, metric.WithAttributes(attribute.String("report", report)))
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg, storeID string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.LogAttrs(ctx, slog.LevelError, msg, slog.String("store.id", storeID), slog.String("error", err.Error()))
	return err
}

var _ ports.Service = (*Service)(nil)
