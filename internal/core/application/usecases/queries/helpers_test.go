package queries_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testOrder(t testing.TB, customer kernel.CustomerID) *order.Order {
	t.Helper()

	price, err := kernel.NewMoney(decimal.RequireFromString("19.99"), kernel.GBP)
	require.NoError(t, err)
	item, err := order.NewOrderItem(kernel.NewProductID(), "Lamp", 3, price)
	require.NoError(t, err)

	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(customer, []order.OrderItem{item}, order.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return o
}
