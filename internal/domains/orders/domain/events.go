package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "orders.order.created"
	EventOrderStatusChanged = "orders.order.status_changed"
)

// Event is the base interface for order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
	TenantID() string
}

type BaseEvent struct {
	Timestamp time.Time
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// OrderCreated is raised after an order and its items are committed.
type OrderCreated struct {
	BaseEvent
	OrderID string
	StoreID string
	Total   decimal.Decimal
	Lines   []LineRequest
}

func (e OrderCreated) EventName() string   { return EventOrderCreated }
func (e OrderCreated) AggregateID() string { return e.OrderID }
func (e OrderCreated) TenantID() string    { return e.StoreID }

// OrderStatusChanged is raised after a status write commits.
type OrderStatusChanged struct {
	BaseEvent
	OrderID    string
	StoreID    string
	FromStatus Status
	ToStatus   Status
}

func (e OrderStatusChanged) EventName() string   { return EventOrderStatusChanged }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }
func (e OrderStatusChanged) TenantID() string    { return e.StoreID }

// NewOrderCreated snapshots the committed order.
func NewOrderCreated(order *Order, at time.Time) OrderCreated {
	lines := make([]LineRequest, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderCreated{
		BaseEvent: BaseEvent{Timestamp: at},
		OrderID:   order.ID,
		StoreID:   order.StoreID,
		Total:     order.Total,
		Lines:     lines,
	}
}
