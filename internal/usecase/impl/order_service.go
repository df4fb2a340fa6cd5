package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "bookbridge/internal/delivery/context"
	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/domain/service"
	"bookbridge/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder runs the whole placement workflow in one transaction: every
// line is validated against live stock, prices are snapshotted, stock is
// decremented conditionally, and the order plus its items are persisted.
// Any failing line rolls back the entire order, stock included.
func (srv *orderService) PlaceOrder(ctx context.Context, actor usecase.Actor, input *usecase.PlaceOrderInput) (*usecase.OrderOutput, error) {
	if !actor.Role.IsCustomer() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only customers may place orders")
	}

	seen := make(map[int64]struct{}, len(input.Items))
	for _, item := range input.Items {
		if _, dup := seen[item.BookID]; dup {
			return nil, domainerrors.ErrValidationFailed.WrapMessage(
				fmt.Sprintf("book %d appears more than once", item.BookID))
		}
		seen[item.BookID] = struct{}{}
	}

	srv.log(ctx).Info("Placing order",
		slog.Int64("customerID", actor.UserID),
		slog.Int("itemCount", len(input.Items)),
	)

	var placed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookRepo := repoFactory.BookRepo()
		orderRepo := repoFactory.OrderRepo()

		items := make([]*entity.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			book, err := bookRepo.FindActiveByID(ctx, line.BookID)
			if err != nil {
				if errors.Is(err, repository.ErrBookNotFound) {
					// The detail names the offending book so it reaches
					// the response payload, not just the server log.
					return errors.WithStack(domainerrors.ErrBookNotFound.WithDetails(
						fmt.Sprintf("book %d not found or unavailable", line.BookID)))
				}

				return errors.Wrap(err, "failed to find book")
			}

			if err := bookRepo.DecrementStock(ctx, book.ID, line.Quantity); err != nil {
				switch {
				case errors.Is(err, repository.ErrInsufficientStock):
					return errors.WithStack(domainerrors.ErrInsufficientStock.WithDetails(
						fmt.Sprintf("insufficient stock for %q: %d available, %d requested",
							book.Title, book.StockQuantity, line.Quantity)))
				case errors.Is(err, repository.ErrBookNotFound):
					return errors.WithStack(domainerrors.ErrBookNotFound.WithDetails(
						fmt.Sprintf("book %d not found or unavailable", line.BookID)))
				default:
					return errors.Wrap(err, "failed to decrement stock")
				}
			}

			item := &entity.OrderItem{
				BookID:   book.ID,
				Book:     book,
				Quantity: line.Quantity,
				Price:    book.Price, // snapshot, later price changes do not touch this order
			}
			item.Subtotal = item.ComputeSubtotal()
			items = append(items, item)
		}

		order := &entity.Order{
			CustomerID:      actor.UserID,
			Status:          entity.OrderStatusPending,
			TotalAmount:     entity.ComputeOrderTotal(items),
			ShippingAddress: input.ShippingAddress,
			Items:           items,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		placed = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order placement failed",
			slog.Int64("customerID", actor.UserID),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Order placed",
		slog.Int64("orderID", placed.ID),
		slog.String("totalAmount", placed.TotalAmount.StringFixed(2)),
	)
	srv.publishEvent(ctx, service.OrderEventPlaced, placed)

	return usecase.NewOrderOutput(placed), nil
}

// ListOrders returns the orders visible to the actor: customers see their
// own, sellers see orders containing their books, admin sees everything.
func (srv *orderService) ListOrders(ctx context.Context, actor usecase.Actor) ([]*usecase.OrderOutput, error) {
	var (
		orders []*entity.Order
		err    error
	)
	switch {
	case actor.Role.IsAdmin():
		orders, err = srv.orderRepo.ListAll(ctx)
	case actor.Role.IsSeller():
		orders, err = srv.orderRepo.ListBySeller(ctx, actor.UserID)
	default:
		orders, err = srv.orderRepo.ListByCustomer(ctx, actor.UserID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	outputs := make([]*usecase.OrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, usecase.NewOrderOutput(order))
	}

	return outputs, nil
}

// GetOrder returns one order when the actor may see it. An order outside the
// actor's scope reads as not found, so order IDs are not probeable.
func (srv *orderService) GetOrder(ctx context.Context, actor usecase.Actor, id int64) (*usecase.OrderOutput, error) {
	order, err := srv.findVisibleOrder(ctx, srv.orderRepo, actor, id)
	if err != nil {
		return nil, err
	}

	return usecase.NewOrderOutput(order), nil
}

// UpdateOrderStatus moves an order to a new status. Allowed for admin and
// for sellers with at least one book in the order.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor usecase.Actor, orderID int64, input *usecase.UpdateOrderStatusInput) (*usecase.OrderOutput, error) {
	status := entity.OrderStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus.WrapMessage(
			fmt.Sprintf("unknown status %q", input.Status))
	}

	order, err := srv.findOrder(ctx, srv.orderRepo, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsAdmin() && !orderContainsSellerBook(order, actor.UserID) {
		return nil, domainerrors.ErrForbidden.WrapMessage("only a seller of this order's books or admin may update its status")
	}

	order.Status = status
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.log(ctx).Info("Order status updated",
		slog.Int64("orderID", order.ID),
		slog.String("status", status.String()),
	)
	srv.publishEvent(ctx, service.OrderEventStatusChanged, order)

	return usecase.NewOrderOutput(order), nil
}

// UpdateOrderItem changes one line's quantity and recomputes the line
// subtotal and the order total in the same transaction. Admin only.
func (srv *orderService) UpdateOrderItem(ctx context.Context, actor usecase.Actor, orderID, itemID int64, input *usecase.UpdateOrderItemInput) (*usecase.OrderOutput, error) {
	if !actor.Role.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("only admin may edit order lines")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := srv.findOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}

		var target *entity.OrderItem
		for _, item := range order.Items {
			if item.ID == itemID {
				target = item

				break
			}
		}
		if target == nil {
			return domainerrors.ErrNotFound.WrapMessage(
				fmt.Sprintf("order %d has no item %d", orderID, itemID))
		}

		target.Quantity = input.Quantity
		target.Subtotal = target.ComputeSubtotal()
		if err := orderRepo.UpdateItem(ctx, target); err != nil {
			return errors.Wrap(err, "failed to update order item")
		}

		order.TotalAmount = entity.ComputeOrderTotal(order.Items)
		if err := orderRepo.Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order total")
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewOrderOutput(updated), nil
}

// DeleteOrder removes an order. Allowed for the owning customer and admin.
func (srv *orderService) DeleteOrder(ctx context.Context, actor usecase.Actor, id int64) error {
	order, err := srv.findOrder(ctx, srv.orderRepo, id)
	if err != nil {
		return err
	}

	if order.CustomerID != actor.UserID && !actor.Role.IsAdmin() {
		return domainerrors.ErrForbidden.WrapMessage("only the owning customer or admin may delete this order")
	}

	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Int64("orderID", id))

	return nil
}

func (srv *orderService) findOrder(ctx context.Context, orderRepo repository.OrderRepository, id int64) (*entity.Order, error) {
	order, err := orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

func (srv *orderService) findVisibleOrder(ctx context.Context, orderRepo repository.OrderRepository, actor usecase.Actor, id int64) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderRepo, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Role.IsAdmin():
	case order.CustomerID == actor.UserID:
	case actor.Role.IsSeller() && orderContainsSellerBook(order, actor.UserID):
	default:
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// orderContainsSellerBook reports whether any line of the order holds a book
// owned by the given seller.
func orderContainsSellerBook(order *entity.Order, sellerID int64) bool {
	for _, item := range order.Items {
		if item.Book != nil && item.Book.SellerID == sellerID {
			return true
		}
	}

	return false
}

// publishEvent emits an order lifecycle event. Publishing is best effort;
// a broker failure never fails the request that triggered it.
func (srv *orderService) publishEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		EventType:   eventType,
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status.String(),
		TotalAmount: order.TotalAmount.StringFixed(2),
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.Int64("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}
