package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig tunes the database/sql pool behind GORM.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool mirrors what the API process runs with when nothing is configured.
var DefaultPool = PoolConfig{MaxOpenConns: 20, MaxIdleConns: 5, ConnMaxLifetime: 30 * time.Minute}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string, pool PoolConfig) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a file-backed (or ":memory:") SQLite database through the pure-Go driver.
// SQLite allows a single writer, so the pool is pinned to one connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Open picks PostgreSQL when a DSN is present and SQLite when only a path is present.
// It returns a nil DB and a no-op cleanup when neither is configured or the connection fails,
// letting callers fall back to in-memory adapters.
func Open(ctx context.Context, dsn, sqlitePath string, pool PoolConfig, log *slog.Logger) (*gorm.DB, func()) {
	if log == nil {
		log = slog.Default()
	}
	var (
		db     *gorm.DB
		err    error
		driver string
	)
	switch {
	case strings.TrimSpace(dsn) != "":
		driver = "postgres"
		db, err = Connect(ctx, dsn, pool)
	case strings.TrimSpace(sqlitePath) != "":
		driver = "sqlite"
		db, err = OpenSQLite(sqlitePath)
	default:
		log.Warn("POSTGRES_DSN and SQLITE_PATH not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	if err != nil {
		log.Warn("failed to open database, falling back to in-memory repositories",
			slog.String("driver", driver), slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to unwrap database connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	attrs := []any{slog.String("driver", driver)}
	if driver == "postgres" {
		host, name := DescribeDSN(dsn)
		attrs = append(attrs, slog.String("host", host), slog.String("database", name))
	}
	log.Info("database connection established", attrs...)
	return db, func() { _ = sqlDB.Close() }
}

// DescribeDSN extracts host and database name from either a URL or keyword/value DSN
// without exposing credentials.
func DescribeDSN(dsn string) (host, database string) {
	dsn = strings.TrimSpace(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", ""
		}
		dsn = converted
	}
	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, "'")
		switch key {
		case "host":
			host = value
		case "dbname":
			database = value
		}
	}
	return host, database
}
