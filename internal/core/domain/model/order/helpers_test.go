package order_test

import (
	"testing"
	"time"

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

func mustItem(t *testing.T, name string, quantity uint, price kernel.Money) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(kernel.NewProductID(), name, quantity, price)
	require.NoError(t, err)
	return item
}

func mustOrder(t *testing.T, items ...order.OrderItem) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewCustomerID(), items)
	require.NoError(t, err)
	return o
}

// orderInStatus drives a fresh order along legal transitions to target and
// drains the events recorded on the way.
func orderInStatus(t *testing.T, target order.Status) *order.Order {
	t.Helper()
	o := mustOrder(t,
		mustItem(t, "Keyboard", 1, mustMoney(t, "49.90", kernel.EUR)),
		mustItem(t, "Mouse", 2, mustMoney(t, "15.00", kernel.EUR)),
	)

	steps := map[order.Status][]func() error{
		order.Pending:   nil,
		order.Confirmed: {o.Confirm},
		order.Paid:      {o.Confirm, func() error { return o.MarkAsPaid(kernel.NewPaymentID()) }},
		order.Shipped: {
			o.Confirm,
			func() error { return o.MarkAsPaid(kernel.NewPaymentID()) },
			func() error { return o.Ship("TRACK-1") },
		},
		order.Delivered: {
			o.Confirm,
			func() error { return o.MarkAsPaid(kernel.NewPaymentID()) },
			func() error { return o.Ship("TRACK-1") },
			o.Deliver,
		},
		order.Cancelled: {func() error { return o.Cancel("changed my mind") }},
	}
	for _, step := range steps[target] {
		require.NoError(t, step())
	}
	require.Equal(t, target, o.Status())
	o.TakeEvents()
	return o
}

// steppingClock returns a clock that yields the given instants in sequence and
// then keeps returning the last one.
func steppingClock(instants ...time.Time) order.Clock {
	i := 0
	return func() time.Time {
		now := instants[i]
		if i < len(instants)-1 {
			i++
		}
		return now
	}
}
