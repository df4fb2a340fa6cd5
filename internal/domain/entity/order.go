package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment state of an order. Membership in the
// enumerated set is enforced; no ordering between statuses is.
type OrderStatus string

const (
	// OrderStatusPending is the initial status of every placed order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing indicates the seller started fulfillment.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped indicates the order left the seller.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is one of the enumerated values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a customer purchase. It exclusively owns its items; TotalAmount is
// derived from them and never trusted independently.
type Order struct {
	ID              int64           // Unique identifier for the order.
	CustomerID      int64           // The customer who placed the order.
	Customer        *User           // Loaded customer, nil when not preloaded.
	Status          OrderStatus     // Current fulfillment status.
	TotalAmount     decimal.Decimal // Sum of all item subtotals.
	ShippingAddress string          // Destination address for this order.
	Items           []*OrderItem    // Order lines, one per distinct book.
	CreatedAt       time.Time       // Timestamp of when this order was placed.
	UpdatedAt       time.Time       // Timestamp of the last modification.
}

// OrderItem is one line of an order. Price is a snapshot of the book price at
// placement time and stays immutable afterward; Subtotal is always
// Price x Quantity.
type OrderItem struct {
	ID        int64           // Unique identifier for the order line.
	OrderID   int64           // The order this line belongs to.
	BookID    int64           // The purchased book; unique per order.
	Book      *Book           // Loaded book, nil when not preloaded.
	Quantity  int             // Number of copies, at least one.
	Price     decimal.Decimal // Book price snapshot taken at placement.
	Subtotal  decimal.Decimal // Price x Quantity.
	CreatedAt time.Time       // Timestamp of when this line was created.
}

// ComputeSubtotal returns Price x Quantity for this line.
func (it *OrderItem) ComputeSubtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ComputeOrderTotal returns the sum of the given items' subtotals. It is the
// single source of truth for an order's TotalAmount and is invoked explicitly
// by the workflows that mutate items, never as a persistence side effect.
func ComputeOrderTotal(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	return total
}
