package narrator

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	textgenports "github.com/Apurer/go-gin-storefront/internal/domains/textgen/ports"
)

var _ ports.SalesNarrator = (*TextGen)(nil)

// TextGen narrates sales data through the text generation service.
type TextGen struct {
	service textgenports.Service
}

func NewTextGen(service textgenports.Service) *TextGen {
	return &TextGen{service: service}
}

func (n *TextGen) SalesSummary(ctx context.Context, data domain.SalesData) (string, error) {
	return n.service.SalesSummary(ctx, textgenports.SalesFigures{
		TotalRevenue: data.TotalRevenue,
		TotalOrders:  data.TotalOrders,
		TopSelling:   data.TopSelling,
		LowStock:     data.LowStock,
	})
}
