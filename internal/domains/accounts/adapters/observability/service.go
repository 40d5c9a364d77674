package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/observability/service"

// Service decorates the accounts service with tracing, logging, and metrics.
// Emails and tokens are never logged.
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

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Register")
	defer span.End()

	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register account")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID), attribute.String("store.id", result.Store.ID))
	s.metrics.add(ctx, s.metrics.registrations)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "account registered",
		slog.String("user.id", result.User.ID), slog.String("store.id", result.Store.ID))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Login")
	defer span.End()

	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, application.ErrUnauthenticated) {
			s.metrics.add(ctx, s.metrics.failedLogins)
		}
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.String("user.id", result.User.ID))
	s.metrics.add(ctx, s.metrics.logins)
	return result, nil
}

func (s *Service) Logout(ctx context.Context, principal domain.Principal) error {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Logout", trace.WithAttributes(attribute.String("user.id", principal.UserID)))
	defer span.End()

	if err := s.inner.Logout(ctx, principal); err != nil {
		return s.handleError(ctx, span, err, "logout failed", slog.String("user.id", principal.UserID))
	}
	return nil
}

func (s *Service) Me(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Me", trace.WithAttributes(attribute.String("user.id", principal.UserID)))
	defer span.End()

	user, err := s.inner.Me(ctx, principal)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load current user", slog.String("user.id", principal.UserID))
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	ctx, span := s.tracer.Start(ctx, "AccountsService.Authenticate")
	defer span.End()

	principal, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		// rejected tokens are not logged
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return principal, err
	}
	span.SetAttributes(attribute.String("user.id", principal.UserID))
	return principal, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelError
	if errors.Is(err, application.ErrInvalidInput) || errors.Is(err, application.ErrConflict) || errors.Is(err, application.ErrUnauthenticated) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

type serviceMetrics struct {
	registrations metric.Int64Counter
	logins        metric.Int64Counter
	failedLogins  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("accounts.service.registrations", metric.WithDescription("Number of merchant registrations"))
	logins, _ := m.Int64Counter("accounts.service.logins", metric.WithDescription("Number of successful logins"))
	failed, _ := m.Int64Counter("accounts.service.failed_logins", metric.WithDescription("Number of rejected logins"))
	return serviceMetrics{registrations: registrations, logins: logins, failedLogins: failed}
}

func (serviceMetrics) add(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
