package events

import (
	"context"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
)

var _ ports.EventPublisher = NoopPublisher{}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(context.Context, *domain.Order) error { return nil }
