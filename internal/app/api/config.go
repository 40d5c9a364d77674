package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	accountstoken "github.com/Apurer/go-gin-storefront/internal/domains/accounts/adapters/token"
	assetscloudinary "github.com/Apurer/go-gin-storefront/internal/domains/assets/adapters/cloudinary"
	assetsminio "github.com/Apurer/go-gin-storefront/internal/domains/assets/adapters/minio"
	assetsdomain "github.com/Apurer/go-gin-storefront/internal/domains/assets/domain"
	"github.com/Apurer/go-gin-storefront/internal/platform/cache"
	"github.com/Apurer/go-gin-storefront/internal/platform/messaging"
	"github.com/Apurer/go-gin-storefront/internal/platform/search"
	platformtemporal "github.com/Apurer/go-gin-storefront/internal/platform/temporal"
)

// devJWTSecret is accepted only when ENVIRONMENT is local.
const devJWTSecret = "super_secret_dev_key"

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	Environment string
	PostgresDSN string
	SQLitePath  string

	JWTSecret string
	TokenTTL  time.Duration

	Redis         cache.RedisConfig
	Kafka         messaging.KafkaConfig
	Elasticsearch search.ElasticsearchConfig

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	UploadProvider string
	Cloudinary     assetscloudinary.Config
	MinIO          assetsminio.Config

	ReserveStock      bool
	StrictTransitions bool
	ReportingLocation *time.Location
	AnalyticsCacheTTL time.Duration

	LoginRateLimit  int
	LoginRateWindow time.Duration
	CORSOrigins     []string

	Temporal         platformtemporal.Config
	TemporalDisabled bool

	SessionPurgeIntervalMinute int
	ShutdownTimeout            time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		Environment: envDefault("ENVIRONMENT", "local"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:  strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Redis: cache.RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Kafka: messaging.KafkaConfig{
			Brokers: csv(os.Getenv("KAFKA_BROKERS")),
			Topic:   envDefault("KAFKA_ORDERS_TOPIC", "storefront.orders"),
		},
		Elasticsearch: search.ElasticsearchConfig{
			Addresses: csv(os.Getenv("ELASTICSEARCH_ADDRESSES")),
			Username:  strings.TrimSpace(os.Getenv("ELASTICSEARCH_USERNAME")),
			Password:  os.Getenv("ELASTICSEARCH_PASSWORD"),
			Index:     envDefault("ELASTICSEARCH_PRODUCTS_INDEX", "products"),
		},
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		UploadProvider: strings.ToLower(envDefault("UPLOAD_PROVIDER", assetsdomain.ProviderCloudinary)),
		Cloudinary: assetscloudinary.Config{
			CloudName: strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME")),
			APIKey:    strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY")),
			APISecret: strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET")),
		},
		MinIO: assetsminio.Config{
			Endpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
			AccessKey: strings.TrimSpace(os.Getenv("MINIO_ACCESS_KEY")),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    envDefault("MINIO_BUCKET", "storefront-assets"),
			UseSSL:    isTruthy(os.Getenv("MINIO_USE_SSL")),
		},
		ReserveStock:      isTruthy(os.Getenv("ORDERS_RESERVE_STOCK")),
		StrictTransitions: isTruthy(os.Getenv("ORDERS_STRICT_TRANSITIONS")),
		CORSOrigins:       csv(os.Getenv("CORS_ORIGINS")),
		Temporal: platformtemporal.Config{
			HostPort:  envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		},
		TemporalDisabled: isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment != "local" {
			return Config{}, fmt.Errorf("JWT_SECRET is required outside the local environment")
		}
		cfg.JWTSecret = devJWTSecret
	}

	var err error
	if cfg.Redis.DB, err = nonNegativeInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateLimit, err = nonNegativeInt("LOGIN_RATE_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.SessionPurgeIntervalMinute, err = nonNegativeInt("SESSION_PURGE_INTERVAL_MINUTES", 0); err != nil {
		return Config{}, err
	}
	durations := []struct {
		key      string
		fallback time.Duration
		target   *time.Duration
	}{
		{"JWT_TTL", accountstoken.DefaultTTL, &cfg.TokenTTL},
		{"ANALYTICS_CACHE_TTL", 0, &cfg.AnalyticsCacheTTL},
		{"LOGIN_RATE_WINDOW", time.Minute, &cfg.LoginRateWindow},
		{"GEMINI_TIMEOUT", 30 * time.Second, &cfg.GeminiTimeout},
		{"KAFKA_WRITE_TIMEOUT", 5 * time.Second, &cfg.Kafka.WriteTimeout},
		{"MINIO_PRESIGN_EXPIRY", assetsminio.DefaultExpiry, &cfg.MinIO.Expiry},
		{"SHUTDOWN_TIMEOUT", 10 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.target, err = duration(d.key, d.fallback); err != nil {
			return Config{}, err
		}
	}

	zone := envDefault("REPORTING_TIMEZONE", "UTC")
	if cfg.ReportingLocation, err = time.LoadLocation(zone); err != nil {
		return Config{}, fmt.Errorf("REPORTING_TIMEZONE %q is not a known time zone: %w", zone, err)
	}

	switch cfg.UploadProvider {
	case assetsdomain.ProviderCloudinary, assetsdomain.ProviderMinIO:
	default:
		return Config{}, fmt.Errorf("UPLOAD_PROVIDER must be %q or %q", assetsdomain.ProviderCloudinary, assetsdomain.ProviderMinIO)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func nonNegativeInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return value, nil
}

// duration accepts Go duration strings ("90s", "15m").
func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration such as 30s or 5m", key)
	}
	return value, nil
}

func csv(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
