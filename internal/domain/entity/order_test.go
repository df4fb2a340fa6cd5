package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_ComputeSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{name: "single copy", price: "10.00", quantity: 1, want: "10"},
		{name: "multiple copies", price: "10.00", quantity: 2, want: "20"},
		{name: "cents survive multiplication", price: "19.99", quantity: 3, want: "59.97"},
		{name: "zero price", price: "0", quantity: 5, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &OrderItem{
				Price:    decimal.RequireFromString(tt.price),
				Quantity: tt.quantity,
			}

			assert.True(t, item.ComputeSubtotal().Equal(decimal.RequireFromString(tt.want)),
				"got %s", item.ComputeSubtotal())
		})
	}
}

func TestComputeOrderTotal(t *testing.T) {
	items := []*OrderItem{
		{Subtotal: decimal.RequireFromString("20.00")},
		{Subtotal: decimal.RequireFromString("59.97")},
		{Subtotal: decimal.RequireFromString("0.03")},
	}

	assert.True(t, ComputeOrderTotal(items).Equal(decimal.RequireFromString("80.00")))
}

func TestComputeOrderTotal_NoItems(t *testing.T) {
	assert.True(t, ComputeOrderTotal(nil).IsZero())
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, status.IsValid(), status.String())
	}

	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, RoleCustomer.IsCustomer())
	assert.True(t, RoleSeller.IsSeller())
	assert.True(t, RoleAdmin.IsAdmin())

	assert.False(t, RoleCustomer.IsSeller())
	assert.False(t, RoleSeller.IsAdmin())
	assert.False(t, Role("merchant").IsValid())
}
