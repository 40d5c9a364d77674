package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	platformmessaging "github.com/Apurer/go-gin-storefront/internal/platform/messaging"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher writes order events to a Kafka topic keyed by order id.
type KafkaPublisher struct {
	writer platformmessaging.Writer
}

func NewKafkaPublisher(writer platformmessaging.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

type envelope struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"orderId"`
	StoreID    string          `json:"storeId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	value, err := json.Marshal(envelope{
		Type:       event.EventName(),
		OrderID:    event.AggregateID(),
		StoreID:    event.TenantID(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	msg := kafka.Message{
		Key:     []byte(event.AggregateID()),
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(event.EventName())}},
		Time:    event.OccurredAt(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish %s: %w", event.EventName(), err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
