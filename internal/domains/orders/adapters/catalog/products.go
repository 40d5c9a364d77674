package catalog

import (
	"context"
	"errors"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.ProductCatalog = (*Products)(nil)

// Products exposes the catalog repository to the orders context.
type Products struct {
	repo catalogports.Repository
}

func NewProducts(repo catalogports.Repository) *Products {
	return &Products{repo: repo}
}

func (p *Products) GetProduct(ctx context.Context, id string) (*domain.ProductRef, error) {
	product, err := p.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return toRef(product), nil
}

func (p *Products) GetProducts(ctx context.Context, ids []string) (map[string]*domain.ProductRef, error) {
	products, err := p.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.ProductRef, len(products))
	for id, product := range products {
		out[id] = toRef(product)
	}
	return out, nil
}

func toRef(p *catalogdomain.Product) *domain.ProductRef {
	return &domain.ProductRef{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SKU:         p.SKU,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
	}
}
