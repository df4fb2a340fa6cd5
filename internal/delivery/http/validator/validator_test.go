package validator

import (
	"testing"

	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationFailed(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

// Order placement input is rejected at the binding layer, before the
// usecase or any transaction is reached.
func TestRequestValidator_PlaceOrderInput(t *testing.T) {
	v := New()

	t.Run("valid input passes", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			ShippingAddress: "1 Main St",
			Items:           []*usecase.OrderItemInput{{BookID: 1, Quantity: 2}},
		})
		require.NoError(t, err)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			ShippingAddress: "1 Main St",
			Items:           []*usecase.OrderItemInput{},
		})
		requireValidationFailed(t, err)
	})

	t.Run("missing items rejected", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			ShippingAddress: "1 Main St",
		})
		requireValidationFailed(t, err)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			ShippingAddress: "1 Main St",
			Items:           []*usecase.OrderItemInput{{BookID: 1, Quantity: 0}},
		})
		requireValidationFailed(t, err)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			ShippingAddress: "1 Main St",
			Items:           []*usecase.OrderItemInput{{BookID: 1, Quantity: -1}},
		})
		requireValidationFailed(t, err)
	})

	t.Run("missing shipping address rejected", func(t *testing.T) {
		err := v.Validate(&usecase.PlaceOrderInput{
			Items: []*usecase.OrderItemInput{{BookID: 1, Quantity: 1}},
		})
		requireValidationFailed(t, err)
	})
}
