package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-storefront/internal/platform/temporal"
)

// ServiceName identifies the API in logs, traces and metrics.
const ServiceName = "storefront-api"

// Run boots the storefront HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobs.Init(ctx, platformobs.ConfigFromEnv(ServiceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	components, cleanup, err := Build(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	checkout, closeCheckout := buildCheckout(ctx, cfg, components, instruments)
	defer closeCheckout()

	server := storefrontserver.NewServer(storefrontserver.Services{
		Accounts:  components.Accounts,
		Stores:    components.Stores,
		Catalog:   components.Catalog,
		Orders:    components.Orders,
		Checkout:  checkout,
		Analytics: components.Analytics,
		TextGen:   components.TextGen,
		Assets:    components.Assets,
	},
		storefrontserver.WithLimiter(components.Limiter),
		storefrontserver.WithLogger(logger),
	)
	router := storefrontserver.NewRouter(server, storefrontserver.RouterConfig{
		ServiceName: ServiceName,
		CORSOrigins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", httpServer.Addr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront API server exited", slog.String("addr", httpServer.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down storefront API", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildCheckout prefers the Temporal placement workflow. Workers only see the API's
// orders through a shared database, so in-memory deployments always check out inline.
func buildCheckout(ctx context.Context, cfg Config, components *Components, instruments *platformobs.Instruments) (ordersports.WorkflowOrchestrator, func()) {
	logger := instruments.Logger
	inline := ordersworkflows.NewInlineOrderWorkflows(components.Orders)
	switch {
	case cfg.TemporalDisabled:
		logger.Info("Temporal disabled via TEMPORAL_DISABLED, running checkout inline")
		return inline, func() {}
	case !components.Durable:
		logger.Warn("no shared database configured, running checkout inline")
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(ctx, cfg.Temporal, logger, instruments.Tracer("temporal-client"), 5*time.Second)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}
