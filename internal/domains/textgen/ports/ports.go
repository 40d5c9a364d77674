package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Generator produces free text for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SalesFigures is the data a sales summary is written from.
type SalesFigures struct {
	TotalRevenue decimal.Decimal
	TotalOrders  int
	TopSelling   []string
	LowStock     []string
}

// Service exposes the text generation use cases.
type Service interface {
	ProductDescription(ctx context.Context, name, category string) (string, error)
	SalesSummary(ctx context.Context, figures SalesFigures) (string, error)
}
