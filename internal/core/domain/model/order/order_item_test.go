package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderItem(t *testing.T) {
	price := mustMoney(t, "10.00", kernel.EUR)
	productID := kernel.NewProductID()

	t.Run("should create valid item", func(t *testing.T) {
		item, err := order.NewOrderItem(productID, "Keyboard", 3, price)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		require.NoError(t, item.ID().Validate())
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, "Keyboard", item.ProductName())
		assert.Equal(t, uint(3), item.Quantity())
		assert.True(t, item.UnitPrice().IsEqual(price))
	})

	tests := []struct {
		name     string
		itemName string
		quantity uint
		wantErr  error
	}{
		{name: "zero quantity", itemName: "Keyboard", quantity: 0, wantErr: order.ErrInvalidQuantity},
		{name: "empty name", itemName: "", quantity: 1, wantErr: order.ErrInvalidProductName},
		{name: "whitespace name", itemName: " \t\n", quantity: 1, wantErr: order.ErrInvalidProductName},
	}
	for _, tt := range tests {
		t.Run("should fail with "+tt.name, func(t *testing.T) {
			_, err := order.NewOrderItem(productID, tt.itemName, tt.quantity, price)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("should report every invalid argument", func(t *testing.T) {
		_, err := order.NewOrderItem(kernel.ProductID{}, "", 0, kernel.Money{})

		require.ErrorIs(t, err, order.ErrInvalidQuantity)
		require.ErrorIs(t, err, order.ErrInvalidProductName)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrMoneyNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var item order.OrderItem

		require.ErrorIs(t, item.Validate(), order.ErrOrderItemIsNotConstructed)
	})
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := mustItem(t, "Keyboard", 3, mustMoney(t, "10.00", kernel.EUR))

	assert.True(t, item.Subtotal().IsEqual(mustMoney(t, "30.00", kernel.EUR)))
	assert.Equal(t, kernel.EUR, item.Subtotal().Currency())
}

func TestOrderItem_ChangeQuantity(t *testing.T) {
	item := mustItem(t, "Keyboard", 3, mustMoney(t, "10.00", kernel.EUR))

	require.ErrorIs(t, item.ChangeQuantity(0), order.ErrInvalidQuantity)
	assert.Equal(t, uint(3), item.Quantity())

	require.NoError(t, item.ChangeQuantity(5))
	assert.Equal(t, uint(5), item.Quantity())
	assert.True(t, item.Subtotal().IsEqual(mustMoney(t, "50", kernel.EUR)))
}

func TestOrderItem_QuantityUpperBound(t *testing.T) {
	price := mustMoney(t, "10.00", kernel.EUR)

	item, err := order.NewOrderItem(kernel.NewProductID(), "Keyboard", order.MaxQuantity, price)
	require.NoError(t, err)
	assert.False(t, item.Subtotal().Amount().IsNegative())

	_, err = order.NewOrderItem(kernel.NewProductID(), "Keyboard", ^uint(0), price)
	require.ErrorIs(t, err, order.ErrInvalidQuantity)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	require.ErrorIs(t, item.ChangeQuantity(order.MaxQuantity+1), order.ErrInvalidQuantity)
	assert.Equal(t, uint(order.MaxQuantity), item.Quantity())
}

func TestRestoreOrderItem(t *testing.T) {
	id := kernel.NewOrderItemID()

	item, err := order.RestoreOrderItem(id, kernel.NewProductID(), "Mouse", 2, mustMoney(t, "5", kernel.USD))

	require.NoError(t, err)
	assert.True(t, item.ID().IsEqual(id))

	_, err = order.RestoreOrderItem(kernel.OrderItemID{}, kernel.NewProductID(), "Mouse", 2, mustMoney(t, "5", kernel.USD))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
