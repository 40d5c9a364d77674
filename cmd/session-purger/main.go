package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-storefront/internal/app/api"
	accountspg "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/persistence/postgres"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
)

// Deletes expired sessions once, or every SESSION_PURGE_INTERVAL_MINUTES when set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))).
		With(slog.String("service", "storefront-session-purger"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, cfg.SQLitePath, platformpostgres.PoolConfig{MaxOpenConns: 2}, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed; cannot purge sessions")
		os.Exit(1)
	}
	store := accountspg.NewSessionStore(db)

	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		removed, err := store.PurgeExpired(purgeCtx)
		if err != nil {
			logger.Error("failed to purge sessions", slog.String("error", err.Error()))
			return
		}
		logger.Info("session purge completed", slog.Int64("removed", removed))
	}

	purge()
	if cfg.SessionPurgeIntervalMinute <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
