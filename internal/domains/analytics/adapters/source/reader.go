package source

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/analytics/ports"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.SalesReader = (*Reader)(nil)

// Reader projects the orders and catalog repositories into reporting facts.
type Reader struct {
	orders   ordersports.Repository
	products catalogports.Repository
}

func NewReader(orders ordersports.Repository, products catalogports.Repository) *Reader {
	return &Reader{orders: orders, products: products}
}

func (r *Reader) Orders(ctx context.Context, storeID string) ([]domain.OrderFact, error) {
	orders, err := r.orders.ListByStore(ctx, storeID, ordersports.Page{})
	if err != nil {
		return nil, err
	}
	return toOrderFacts(orders), nil
}

func (r *Reader) OrdersSince(ctx context.Context, storeID string, since time.Time) ([]domain.OrderFact, error) {
	orders, err := r.orders.ListByStoreSince(ctx, storeID, since)
	if err != nil {
		return nil, err
	}
	return toOrderFacts(orders), nil
}

func (r *Reader) Products(ctx context.Context, storeID string) ([]domain.ProductFact, error) {
	products, err := r.products.List(ctx, catalogports.ListFilter{StoreID: storeID})
	if err != nil {
		return nil, err
	}
	facts := make([]domain.ProductFact, 0, len(products))
	for _, p := range products {
		facts = append(facts, toProductFact(p))
	}
	return facts, nil
}

func toOrderFacts(orders []*ordersdomain.Order) []domain.OrderFact {
	facts := make([]domain.OrderFact, 0, len(orders))
	for _, o := range orders {
		fact := domain.OrderFact{
			ID:        o.ID,
			Status:    string(o.Status),
			Total:     o.Total,
			CreatedAt: o.CreatedAt,
			Lines:     make([]domain.LineFact, 0, len(o.Items)),
		}
		for _, item := range o.Items {
			fact.Lines = append(fact.Lines, domain.LineFact{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		facts = append(facts, fact)
	}
	return facts
}

func toProductFact(p *catalogdomain.Product) domain.ProductFact {
	return domain.ProductFact{ID: p.ID, Name: p.Name, Stock: p.Stock}
}
