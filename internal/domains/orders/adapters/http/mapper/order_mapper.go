package mapper

import (
	"encoding/json"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/money"
)

// OrderLine is one requested product of a checkout.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrder is the inbound checkout payload. The total is never accepted from the client.
type CreateOrder struct {
	Items           []OrderLine `json:"items"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	ShippingAddress string      `json:"shippingAddress"`
}

// UpdateStatus is the inbound payload of updateOrderStatus.
type UpdateStatus struct {
	Status string `json:"status" binding:"required"`
}

// Product is the product reference embedded in an order item.
type Product struct {
	ID       string      `json:"id"`
	StoreID  string      `json:"storeId"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	SKU      string      `json:"sku"`
	Stock    int         `json:"stock"`
	ImageURL *string     `json:"imageUrl"`
	Active   bool        `json:"active"`
}

// OrderItem is an immutable order line with its captured unit price.
type OrderItem struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"orderId"`
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	Product   *Product    `json:"product,omitempty"`
}

// Order is the HTTP representation of an order aggregate.
type Order struct {
	ID              string      `json:"id"`
	StoreID         string      `json:"storeId"`
	Total           json.Number `json:"total"`
	Status          string      `json:"status"`
	CustomerName    *string     `json:"customerName"`
	CustomerEmail   *string     `json:"customerEmail"`
	ShippingAddress *string     `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ToPlaceOrderInput maps a checkout payload onto the service input.
func ToPlaceOrderInput(storeID, idempotencyKey string, payload CreateOrder) ports.PlaceOrderInput {
	lines := make([]domain.LineRequest, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, domain.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return ports.PlaceOrderInput{
		StoreID: storeID,
		Items:   lines,
		Customer: domain.Customer{
			Name:            payload.CustomerName,
			Email:           payload.CustomerEmail,
			ShippingAddress: payload.ShippingAddress,
		},
		IdempotencyKey: idempotencyKey,
	}
}

// FromDomainOrder converts an order and its items into the transport form.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     money.JSON(item.Price),
			Product:   fromProductRef(item.Product),
		})
	}
	return Order{
		ID:              order.ID,
		StoreID:         order.StoreID,
		Total:           money.JSON(order.Total),
		Status:          string(order.Status),
		CustomerName:    optional(order.Customer.Name),
		CustomerEmail:   optional(order.Customer.Email),
		ShippingAddress: optional(order.Customer.ShippingAddress),
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// FromDomainOrders converts a slice of orders.
func FromDomainOrders(orders []*domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

func fromProductRef(ref *domain.ProductRef) *Product {
	if ref == nil {
		return nil
	}
	return &Product{
		ID:       ref.ID,
		StoreID:  ref.StoreID,
		Name:     ref.Name,
		Price:    money.JSON(ref.Price),
		SKU:      ref.SKU,
		Stock:    ref.Stock,
		ImageURL: optional(ref.ImageURL),
		Active:   ref.Active,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
