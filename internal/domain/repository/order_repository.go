package repository

import (
	"context"
	"errors"

	"bookbridge/internal/domain/entity"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderItemNotFound is returned when an order line is not found.
var ErrOrderItemNotFound = errors.New("order item not found")

// ErrDuplicateOrderItem is returned when a book appears twice in one order.
var ErrDuplicateOrderItem = errors.New("book already present in order")

// OrderRepository defines the standard operations for order persistence.
// An order exclusively owns its items; deleting the order removes them.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its items, their books, and the
	// customer preloaded.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// ListByCustomer retrieves all orders placed by one customer, most recent first.
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error)

	// ListBySeller retrieves orders containing at least one of the seller's
	// books, deduplicated, most recent first.
	ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Order, error)

	// ListAll retrieves every order, most recent first. Admin view only.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// Update persists the order's mutable fields (status, total amount).
	Update(ctx context.Context, order *entity.Order) error

	// FindItemByID retrieves a single order line with its book preloaded.
	FindItemByID(ctx context.Context, itemID int64) (*entity.OrderItem, error)

	// UpdateItem persists an order line's quantity and recomputed subtotal.
	UpdateItem(ctx context.Context, item *entity.OrderItem) error

	// Delete removes an order and, by ownership, all of its items.
	Delete(ctx context.Context, id int64) error
}
