package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrMissingStore    = errors.New("order store is required")
	ErrMissingProduct  = errors.New("order item product is required")
)

// Customer holds the optional shopper details captured at checkout.
type Customer struct {
	Name            string
	Email           string
	ShippingAddress string
}

// ProductRef is the catalog view of a product as seen by an order.
type ProductRef struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
	Stock       int
	ImageURL    string
	Active      bool
}

// Item is an immutable order line. Price is the unit price captured when the order was placed.
type Item struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Product   *ProductRef
}

// Subtotal is price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineRequest is a requested product and quantity before lookup.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Order is the purchase aggregate of a single store.
type Order struct {
	ID        string
	StoreID   string
	Total     decimal.Decimal
	Status    Status
	Customer  Customer
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateLines checks the requested lines without touching the catalog.
func ValidateLines(lines []LineRequest) error {
	if len(lines) == 0 {
		return ErrNoItems
	}
	for _, line := range lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return ErrMissingProduct
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %s has quantity %d", ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
	}
	return nil
}

// NewOrder builds a pending order whose total is derived from its items.
func NewOrder(storeID string, customer Customer, items []Item) (*Order, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrMissingStore
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total = total.Add(item.Subtotal())
	}
	return &Order{
		StoreID: storeID,
		Total:   total,
		Status:  StatusPending,
		Customer: Customer{
			Name:            strings.TrimSpace(customer.Name),
			Email:           strings.TrimSpace(customer.Email),
			ShippingAddress: strings.TrimSpace(customer.ShippingAddress),
		},
		Items: append([]Item(nil), items...),
	}, nil
}

// ParseStatus accepts only the five known statuses.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}
}
