package service

import (
	"context"
)

// Order event types carried in OrderEvent.EventType.
const (
	OrderEventPlaced        = "order.placed"
	OrderEventStatusChanged = "order.status_changed"
)

// OrderEvent represents an order lifecycle event published for downstream
// consumers (fulfillment, notifications, analytics).
type OrderEvent struct {
	RequestID   string `json:"request_id,omitempty"` // For distributed tracing
	EventType   string `json:"event_type"`
	OrderID     int64  `json:"order_id"`
	CustomerID  int64  `json:"customer_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
