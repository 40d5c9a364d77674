package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/clients/http/gemini"
	accountsmemory "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/memory"
	accountsobs "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/observability"
	accountspg "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/persistence/postgres"
	accountsredis "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/session/redis"
	accountstoken "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/token"
	accountsapp "github.com/Apurer/go-gin-storefront/internal/domains/accounts/application"
	accountsports "github.com/Apurer/go-gin-storefront/internal/domains/accounts/ports"
	analyticsredis "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/cache/redis"
	analyticsnarrator "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/narrator"
	analyticsobs "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/observability"
	analyticssource "github.com/Apurer/go-gin-storefront/internal/domains/analytics/adapters/source"
	analyticsapp "github.com/Apurer/go-gin-storefront/internal/domains/analytics/application"
	analyticsports "github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	assetscloudinary "github.com/Apurer/go-gin-storefront/internal/domains/assets/adapters/cloudinary"
	assetsminio "github.com/Apurer/go-gin-storefront/internal/domains/assets/adapters/minio"
	assetsapp "github.com/Apurer/go-gin-storefront/internal/domains/assets/application"
	assetsdomain "github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
	assetsports "github.com/Apurer/go-gin-storefront/internal/domains/assets/ports"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogsearch "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/search/elasticsearch"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	orderscatalog "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersmessaging "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/messaging"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	orderspg "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	storesmemory "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/memory"
	storesobs "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/observability"
	storespg "github.com/Apurer/go-gin-storefront/internal/domains/stores/adapters/persistence/postgres"
	storesapp "github.com/Apurer/go-gin-storefront/internal/domains/stores/application"
	storesports "github.com/Apurer/go-gin-storefront/internal/domains/stores/ports"
	textgenapp "github.com/Apurer/go-gin-storefront/internal/domains/textgen/application"
	textgenports "github.com/Apurer/go-gin-storefront/internal/domains/textgen/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/cache"
	"github.com/Apurer/go-gin-storefront/internal/platform/messaging"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	"github.com/Apurer/go-gin-storefront/internal/platform/search"
	"github.com/Apurer/go-gin-storefront/internal/shared/ratelimit"
)

// Components are the wired, instrumented services of every bounded context.
type Components struct {
	Accounts  accountsports.Service
	Stores    storesports.Service
	Catalog   catalogports.Service
	Orders    ordersports.Service
	Analytics analyticsports.Service
	TextGen   textgenports.Service
	Assets    assetsports.Service
	// Limiter is nil when Redis or LOGIN_RATE_LIMIT is not configured.
	Limiter ratelimit.Limiter
	// Durable reports whether state lives in a shared database, which Temporal workers require.
	Durable bool
}

type repositories struct {
	stores      storesports.Repository
	products    catalogports.Repository
	orders      ordersports.Repository
	idempotency ordersports.IdempotencyStore
	users       accountsports.Repository
	registry    accountsports.OwnerRegistry
	sessions    accountsports.SessionStore
}

func memoryRepositories() repositories {
	stores := storesmemory.NewRepository()
	products := catalogmemory.NewRepository()
	users := accountsmemory.NewRepository()
	return repositories{
		stores:      stores,
		products:    products,
		orders:      ordersmemory.NewRepository(products),
		idempotency: ordersmemory.NewIdempotencyStore(),
		users:       users,
		registry:    accountsmemory.NewRegistry(stores, users),
		sessions:    accountsmemory.NewSessionStore(),
	}
}

func gormRepositories(db *gorm.DB) repositories {
	return repositories{
		stores:      storespg.NewRepository(db),
		products:    catalogpg.NewRepository(db),
		orders:      orderspg.NewRepository(db),
		idempotency: orderspg.NewIdempotencyStore(db),
		users:       accountspg.NewRepository(db),
		registry:    accountspg.NewRegistry(db),
		sessions:    accountspg.NewSessionStore(db),
	}
}

// Build opens the configured infrastructure and wires every service. Optional
// collaborators that are unconfigured or unreachable are logged and skipped.
// The returned cleanup closes everything Build opened.
func Build(ctx context.Context, cfg Config, instruments *platformobs.Instruments) (*Components, func(), error) {
	logger := instruments.Logger
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, cfg.SQLitePath, platformpostgres.DefaultPool, logger)
	closers = append(closers, closeDB)
	repos := memoryRepositories()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to migrate schema: %w", err)
		}
		repos = gormRepositories(db)
	}

	redisClient := connectRedis(ctx, cfg.Redis, logger)
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
		repos.sessions = accountsredis.NewSessionStore(redisClient)
		logger.Info("sessions stored in redis")
	}

	catalogOpts := []catalogapp.Option{catalogapp.WithLogger(logger)}
	if index := connectSearchIndex(ctx, cfg.Elasticsearch, logger); index != nil {
		catalogOpts = append(catalogOpts, catalogapp.WithSearchIndex(index))
	}

	var publishers ordersmessaging.Fanout
	if cfg.Kafka.Enabled() {
		writer := messaging.NewKafkaWriter(cfg.Kafka)
		closers = append(closers, func() { _ = writer.Close() })
		publishers = append(publishers, ordersmessaging.NewKafkaPublisher(writer))
		logger.Info("order events published to kafka", slog.String("topic", cfg.Kafka.Topic))
	}

	analyticsOpts := []analyticsapp.Option{
		analyticsapp.WithLocation(cfg.ReportingLocation),
		analyticsapp.WithLogger(logger),
	}
	if redisClient != nil && cfg.AnalyticsCacheTTL > 0 {
		statsCache := analyticsredis.NewStatsCache(redisClient, cfg.AnalyticsCacheTTL)
		analyticsOpts = append(analyticsOpts, analyticsapp.WithStatsCache(statsCache))
		publishers = append(publishers, analyticsredis.InvalidateOnOrderEvents(statsCache))
		catalogOpts = append(catalogOpts, catalogapp.WithStoreChangeListener(statsCache.Invalidate))
	}

	var policy ordersdomain.TransitionPolicy = ordersdomain.PermissivePolicy{}
	if cfg.StrictTransitions {
		policy = ordersdomain.StrictPolicy{}
	}
	orderOpts := []ordersapp.Option{
		ordersapp.WithIdempotencyStore(repos.idempotency),
		ordersapp.WithTransitionPolicy(policy),
		ordersapp.WithStockReservation(cfg.ReserveStock),
		ordersapp.WithLogger(logger),
	}
	if len(publishers) > 0 {
		orderOpts = append(orderOpts, ordersapp.WithEventPublisher(publishers))
	}

	tokens, err := accountstoken.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to configure tokens: %w", err)
	}

	textgen := textgenapp.NewService(newGenerator(cfg, logger), textgenapp.WithLogger(logger))
	analyticsOpts = append(analyticsOpts, analyticsapp.WithNarrator(analyticsnarrator.NewTextGen(textgen)))

	components := &Components{
		Accounts: accountsobs.New(
			accountsapp.NewService(repos.users, repos.stores, repos.registry, tokens, repos.sessions),
			accountsobs.WithLogger(logger),
			accountsobs.WithTracer(instruments.Tracer("internal.accounts.application")),
			accountsobs.WithMeter(instruments.Meter("internal.accounts.application")),
		),
		Stores: storesobs.New(
			storesapp.NewService(repos.stores),
			storesobs.WithLogger(logger),
			storesobs.WithTracer(instruments.Tracer("internal.stores.application")),
			storesobs.WithMeter(instruments.Meter("internal.stores.application")),
		),
		Catalog: catalogobs.New(
			catalogapp.NewService(repos.products, catalogOpts...),
			catalogobs.WithLogger(logger),
			catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
			catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		),
		Orders: ordersobs.New(
			ordersapp.NewService(repos.orders, orderscatalog.NewProducts(repos.products), orderOpts...),
			ordersobs.WithLogger(logger),
			ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
			ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
		),
		Analytics: analyticsobs.New(
			analyticsapp.NewService(analyticssource.NewReader(repos.orders, repos.products), analyticsOpts...),
			analyticsobs.WithLogger(logger),
			analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
			analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
		),
		TextGen: textgen,
		Assets:  assetsapp.NewService(newUploadSigner(ctx, cfg, logger)),
		Durable: db != nil,
	}
	if redisClient != nil && cfg.LoginRateLimit > 0 {
		components.Limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}
	return components, cleanup, nil
}

func connectRedis(ctx context.Context, cfg cache.RedisConfig, logger *slog.Logger) *redis.Client {
	if !cfg.Enabled() {
		logger.Info("REDIS_ADDR not set, sessions and rate limits stay in process")
		return nil
	}
	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", slog.String("addr", cfg.Addr), slog.String("error", err.Error()))
		return nil
	}
	logger.Info("redis connected", slog.String("addr", cfg.Addr))
	return client
}

func connectSearchIndex(ctx context.Context, cfg search.ElasticsearchConfig, logger *slog.Logger) catalogports.SearchIndex {
	if !cfg.Enabled() {
		return nil
	}
	client, err := search.NewElasticsearchClient(ctx, cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, product search uses the repository", slog.String("error", err.Error()))
		return nil
	}
	index := catalogsearch.NewIndex(client, cfg.Index)
	if err := index.EnsureIndex(ctx); err != nil {
		logger.Warn("failed to prepare product index, product search uses the repository", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("product search backed by elasticsearch", slog.String("index", cfg.Index))
	return index
}

// newGenerator returns nil when GEMINI_API_KEY is absent so text generation falls back to canned copy.
func newGenerator(cfg Config, logger *slog.Logger) textgenports.Generator {
	if cfg.GeminiAPIKey == "" {
		logger.Info("GEMINI_API_KEY not set, text generation uses fallback copy")
		return nil
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey,
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.GeminiTimeout}),
	)
	if err != nil {
		logger.Warn("failed to configure gemini client", slog.String("error", err.Error()))
		return nil
	}
	return client
}

// newUploadSigner returns nil when the selected provider is not configured; uploads then answer 503.
func newUploadSigner(ctx context.Context, cfg Config, logger *slog.Logger) assetsports.Signer {
	switch cfg.UploadProvider {
	case assetsdomain.ProviderMinIO:
		if !cfg.MinIO.Enabled() {
			logger.Warn("UPLOAD_PROVIDER is minio but MINIO_ENDPOINT is not set")
			return nil
		}
		signer, err := assetsminio.Dial(ctx, cfg.MinIO)
		if err != nil {
			logger.Warn("minio unavailable, uploads disabled", slog.String("error", err.Error()))
			return nil
		}
		return signer
	default:
		if !cfg.Cloudinary.Enabled() {
			logger.Info("cloudinary credentials not set, uploads disabled")
			return nil
		}
		signer, err := assetscloudinary.NewSigner(cfg.Cloudinary)
		if err != nil {
			logger.Warn("failed to configure cloudinary", slog.String("error", err.Error()))
			return nil
		}
		return signer
	}
}
