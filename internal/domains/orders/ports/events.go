package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// EventPublisher delivers committed order events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventPublisherFunc adapts a function into an EventPublisher.
type EventPublisherFunc func(ctx context.Context, event domain.Event) error

func (f EventPublisherFunc) Publish(ctx context.Context, event domain.Event) error {
	return f(ctx, event)
}
