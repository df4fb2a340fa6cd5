package usecase

import (
	"context"
	"time"

	"bookbridge/internal/domain/entity"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gte=1"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	ShippingAddress string            `json:"shipping_address" validate:"required,max=1000"`
	Items           []*OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusInput carries the requested new status.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderItemInput carries the new quantity for an order line.
type UpdateOrderItemInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// OrderItemOutput is the outward representation of an order line. Price is
// the placement-time snapshot, not the book's current price.
type OrderItemOutput struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

// OrderOutput is the outward representation of an order.
type OrderOutput struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customer_id"`
	CustomerName    string             `json:"customer_name,omitempty"`
	Status          string             `json:"status"`
	TotalAmount     string             `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	Items           []*OrderItemOutput `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewOrderItemOutput maps a domain order line to its outward representation.
func NewOrderItemOutput(item *entity.OrderItem) *OrderItemOutput {
	if item == nil {
		return nil
	}

	bookTitle := ""
	if item.Book != nil {
		bookTitle = item.Book.Title
	}

	return &OrderItemOutput{
		ID:        item.ID,
		BookID:    item.BookID,
		BookTitle: bookTitle,
		Quantity:  item.Quantity,
		Price:     item.Price.StringFixed(2),
		Subtotal:  item.Subtotal.StringFixed(2),
	}
}

// NewOrderOutput maps a domain order to its outward representation.
func NewOrderOutput(order *entity.Order) *OrderOutput {
	if order == nil {
		return nil
	}

	customerName := ""
	if order.Customer != nil {
		customerName = order.Customer.Name
	}

	items := make([]*OrderItemOutput, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, NewOrderItemOutput(item))
	}

	return &OrderOutput{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CustomerName:    customerName,
		Status:          order.Status.String(),
		TotalAmount:     order.TotalAmount.StringFixed(2),
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// OrderUsecase defines order placement and fulfillment operations. Visibility
// is role-scoped: customers see their own orders, sellers see orders holding
// their books, admin sees everything.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, actor Actor, input *PlaceOrderInput) (*OrderOutput, error)
	ListOrders(ctx context.Context, actor Actor) ([]*OrderOutput, error)
	GetOrder(ctx context.Context, actor Actor, id int64) (*OrderOutput, error)
	UpdateOrderStatus(ctx context.Context, actor Actor, orderID int64, input *UpdateOrderStatusInput) (*OrderOutput, error)
	UpdateOrderItem(ctx context.Context, actor Actor, orderID, itemID int64, input *UpdateOrderItemInput) (*OrderOutput, error)
	DeleteOrder(ctx context.Context, actor Actor, id int64) error
}
