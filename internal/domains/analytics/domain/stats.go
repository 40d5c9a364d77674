package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// LowStockThreshold is the stock level below which a product is flagged.
	LowStockThreshold = 10
	// TopSellingLimit caps the best seller ranking.
	TopSellingLimit = 3
	// ChartDays is the length of the sales chart window, today included.
	ChartDays = 7

	chartDateLayout = "2006-01-02"
	cancelledStatus = "CANCELLED"
)

// OrderFact is the read-only view of an order used for reporting.
type OrderFact struct {
	ID        string
	Status    string
	Total     decimal.Decimal
	CreatedAt time.Time
	Lines     []LineFact
}

// LineFact is a sold quantity of one product.
type LineFact struct {
	ProductID string
	Quantity  int
}

// ProductFact is the read-only view of a product used for reporting.
type ProductFact struct {
	ID    string
	Name  string
	Stock int
}

// DashboardStats summarises a store's lifetime sales.
type DashboardStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	LowStockCount     int             `json:"lowStockCount"`
	TotalProducts     int             `json:"totalProducts"`
}

// SalesData is the narrative input for the sales summary.
type SalesData struct {
	TotalRevenue decimal.Decimal
	TotalOrders  int
	TopSelling   []string
	LowStock     []string
}

// ChartPoint is one calendar day of the sales chart.
type ChartPoint struct {
	Date    string
	Revenue decimal.Decimal
	Orders  int
}

// Revenue sums order totals over every status, cancelled orders included.
// BuildChart excludes cancelled orders; the two figures diverge on purpose until product decides otherwise.
func Revenue(orders []OrderFact) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

// ComputeDashboard derives the dashboard figures from a store's orders and products.
func ComputeDashboard(orders []OrderFact, products []ProductFact) DashboardStats {
	revenue := Revenue(orders)
	stats := DashboardStats{
		TotalRevenue:      revenue,
		TotalOrders:       len(orders),
		AverageOrderValue: decimal.Zero,
		TotalProducts:     len(products),
	}
	if len(orders) > 0 {
		stats.AverageOrderValue = revenue.DivRound(decimal.NewFromInt(int64(len(orders))), 2)
	}
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats
}

// ComputeSalesData builds the summary input: totals, best sellers and low stock labels.
func ComputeSalesData(orders []OrderFact, products []ProductFact) SalesData {
	return SalesData{
		TotalRevenue: Revenue(orders),
		TotalOrders:  len(orders),
		TopSelling:   RankTopSelling(orders, products, TopSellingLimit),
		LowStock:     LowStockLabels(products),
	}
}

// RankTopSelling ranks products by summed quantity, ties broken by product id,
// and renders "<name> (<qty> sold)". Products missing from the catalog are labelled by id.
func RankTopSelling(orders []OrderFact, products []ProductFact, limit int) []string {
	sold := map[string]int{}
	for _, o := range orders {
		for _, line := range o.Lines {
			sold[line.ProductID] += line.Quantity
		}
	}
	ids := make([]string, 0, len(sold))
	for id := range sold {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if sold[ids[i]] != sold[ids[j]] {
			return sold[ids[i]] > sold[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if limit >= 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = id
		}
		labels = append(labels, fmt.Sprintf("%s (%d sold)", name, sold[id]))
	}
	return labels
}

// LowStockLabels renders "<name> (<stock> left)" for products under the threshold, lowest stock first.
func LowStockLabels(products []ProductFact) []string {
	low := make([]ProductFact, 0)
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].Stock != low[j].Stock {
			return low[i].Stock < low[j].Stock
		}
		return low[i].ID < low[j].ID
	})
	labels := make([]string, 0, len(low))
	for _, p := range low {
		labels = append(labels, fmt.Sprintf("%s (%d left)", p.Name, p.Stock))
	}
	return labels
}

// ChartWindowStart is local midnight of the first day in the chart window ending on now's day.
func ChartWindowStart(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-(ChartDays-1), 0, 0, 0, 0, loc)
}

// BuildChart buckets non-cancelled orders into ChartDays calendar days ending today in loc.
// Days without orders stay zero; points are ordered oldest first.
func BuildChart(orders []OrderFact, now time.Time, loc *time.Location) []ChartPoint {
	if loc == nil {
		loc = time.UTC
	}
	start := ChartWindowStart(now, loc)
	points := make([]ChartPoint, ChartDays)
	index := make(map[string]int, ChartDays)
	for i := range points {
		day := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, loc).Format(chartDateLayout)
		points[i] = ChartPoint{Date: day, Revenue: decimal.Zero}
		index[day] = i
	}
	for _, o := range orders {
		if o.Status == cancelledStatus {
			continue
		}
		i, ok := index[o.CreatedAt.In(loc).Format(chartDateLayout)]
		if !ok {
			continue
		}
		points[i].Revenue = points[i].Revenue.Add(o.Total)
		points[i].Orders++
	}
	return points
}
