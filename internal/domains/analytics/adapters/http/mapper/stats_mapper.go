package mapper

import (
	"encoding/json"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/money"
)

// DashboardStats is the HTTP representation of dashboardStats.
type DashboardStats struct {
	TotalRevenue      json.Number `json:"totalRevenue"`
	TotalOrders       int         `json:"totalOrders"`
	AverageOrderValue json.Number `json:"averageOrderValue"`
	LowStockCount     int         `json:"lowStockCount"`
	TotalProducts     int         `json:"totalProducts"`
}

// ChartPoint is one day of salesChartData.
type ChartPoint struct {
	Date    string      `json:"date"`
	Revenue json.Number `json:"revenue"`
	Orders  int         `json:"orders"`
}

// SalesSummary wraps the generated narrative.
type SalesSummary struct {
	Summary string `json:"summary"`
}

func FromDomainStats(stats domain.DashboardStats) DashboardStats {
	return DashboardStats{
		TotalRevenue:      money.JSON(stats.TotalRevenue),
		TotalOrders:       stats.TotalOrders,
		AverageOrderValue: money.JSON(stats.AverageOrderValue),
		LowStockCount:     stats.LowStockCount,
		TotalProducts:     stats.TotalProducts,
	}
}

func FromDomainChart(points []domain.ChartPoint) []ChartPoint {
	result := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		result = append(result, ChartPoint{Date: p.Date, Revenue: money.JSON(p.Revenue), Orders: p.Orders})
	}
	return result
}
