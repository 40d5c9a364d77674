package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
)

// SalesReader loads the order and product facts of one store.
type SalesReader interface {
	Orders(ctx context.Context, storeID string) ([]domain.OrderFact, error)
	OrdersSince(ctx context.Context, storeID string, since time.Time) ([]domain.OrderFact, error)
	Products(ctx context.Context, storeID string) ([]domain.ProductFact, error)
}

// StatsCache memoises dashboard stats per store. A miss reports ok=false and no error.
type StatsCache interface {
	Get(ctx context.Context, storeID string) (stats *domain.DashboardStats, ok bool, err error)
	Set(ctx context.Context, storeID string, stats domain.DashboardStats) error
	Invalidate(ctx context.Context, storeID string) error
}

// SalesNarrator turns sales data into a short narrative.
type SalesNarrator interface {
	SalesSummary(ctx context.Context, data domain.SalesData) (string, error)
}

// Service exposes the analytics use cases.
type Service interface {
	DashboardStats(ctx context.Context, storeID string) (domain.DashboardStats, error)
	SalesData(ctx context.Context, storeID string) (domain.SalesData, error)
	SalesChart(ctx context.Context, storeID string) ([]domain.ChartPoint, error)
	SalesSummary(ctx context.Context, storeID string) (string, error)
}
