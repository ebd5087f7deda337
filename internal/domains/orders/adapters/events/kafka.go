package events

import (
	"context"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	"github.com/happypaws/happypaws-api/internal/platform/kafka"
)

// DefaultTopic carries order lifecycle events.
const DefaultTopic = "orders.created"

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// OrderCreatedEvent is the wire payload emitted after placement.
type OrderCreatedEvent struct {
	OrderID         string   `json:"orderId"`
	UserID          string   `json:"userId"`
	ListingIDs      []string `json:"listingIds"`
	Total           float64  `json:"total"`
	PaymentMethod   string   `json:"paymentMethod"`
	ShippingAddress string   `json:"shippingAddress"`
	Status          string   `json:"status"`
}

// KafkaPublisher emits order events to a Kafka topic.
type KafkaPublisher struct {
	producer *kafka.Producer
}

// NewKafkaPublisher wires a publisher over a topic-bound producer.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// OrderCreated publishes the placement event keyed by order ID.
func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	if p == nil || p.producer == nil || order == nil {
		return nil
	}
	return p.producer.Publish(ctx, order.ID, OrderCreatedEvent{
		OrderID:         order.ID,
		UserID:          order.UserID,
		ListingIDs:      order.ListingIDs,
		Total:           order.Total,
		PaymentMethod:   string(order.PaymentMethod),
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
	})
}
