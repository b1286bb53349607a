package kafka

import (
	"context"
	"log/slog"

	"github.com/microshop/orders/internal/orders/domain"
)

// NoopEventBus logs events without sending them to Kafka. Useful for local dev before wiring Kafka.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID string) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, status domain.OrderStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", string(status))
	return nil
}
