package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string, currency kernel.Currency) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func line(t *testing.T, name string, quantity uint, amount string, currency kernel.Currency) commands.CreateOrderItem {
	t.Helper()
	return commands.CreateOrderItem{
		ProductID:   kernel.NewProductID(),
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   mustMoney(t, amount, currency),
	}
}

// storedOrder returns a pending two-line order with its creation event drained,
// as a repository would hand it back.
func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	first, err := order.NewOrderItem(kernel.NewProductID(), "Keyboard", 1, mustMoney(t, "49.90", kernel.EUR))
	require.NoError(t, err)
	second, err := order.NewOrderItem(kernel.NewProductID(), "Mouse", 2, mustMoney(t, "15", kernel.EUR))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewCustomerID(), []order.OrderItem{first, second})
	require.NoError(t, err)
	o.TakeEvents()
	return o
}
