package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the order aggregate builder.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// Application error types carried across the Temporal boundary.
	ErrTypeInvalidInput = "orders.InvalidInput"
	ErrTypeNotFound     = "orders.NotFound"
	ErrTypeConflict     = "orders.Conflict"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder builds and persists the order. Business rejections are returned as
// non-retryable application errors so the workflow fails fast.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "storeId", input.StoreID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "storeId", input.StoreID, "lines", len(input.Items))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "storeId", input.StoreID, "error", err)
		return nil, encodeError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

func encodeError(err error) error {
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	case errors.Is(err, ordersports.ErrProductNotFound), errors.Is(err, ordersports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotFound, err)
	case errors.Is(err, ordersapp.ErrConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeConflict, err)
	}
	return err
}
