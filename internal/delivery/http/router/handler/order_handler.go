package handler

import (
	"log/slog"
	"net/http"

	"bookbridge/internal/delivery/http/response"
	"bookbridge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Place handles the order placement request.
func (h *OrderHandler) Place(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.PlaceOrder(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order placed successfully")
}

// List returns the orders visible to the authenticated actor.
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListOrders(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved successfully")
}

// Get returns one order.
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOrder(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order retrieved successfully")
}

// UpdateStatus moves an order to a new fulfillment status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateOrderStatus(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order status updated successfully")
}

// UpdateItem changes one order line's quantity. Admin only.
func (h *OrderHandler) UpdateItem(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	orderID, err := PathID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := PathID(c, "itemID")
	if err != nil {
		return err
	}

	var input *usecase.UpdateOrderItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateOrderItem(c.Request().Context(), actor, orderID, itemID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order item updated successfully")
}

// Delete removes an order. Owning customer or admin.
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := RequireActor(c)
	if err != nil {
		return err
	}

	id, err := PathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Order deleted"}, "Order deleted successfully")
}
