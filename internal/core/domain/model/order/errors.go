package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrder                  = errors.New("order must contain at least one item")
	ErrInvalidStatusTransition     = errors.New("invalid status transition")
	ErrCannotCancelTerminalOrder   = errors.New("cannot cancel an order in a terminal status")
	ErrCannotModifyNonPendingOrder = errors.New("items can only be changed while the order is pending")
	ErrOrderItemNotFound           = errors.New("order item not found")
	ErrCannotRemoveLastItem        = errors.New("cannot remove the last item of an order")
	ErrInvalidQuantity             = errors.New("quantity must be greater than zero")
	ErrInvalidProductName          = errors.New("product name must not be blank")

	ErrOrderIsNotConstructed     = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem or RestoreOrderItem")
)

// InvalidStatusTransitionError carries the rejected transition. It matches
// ErrInvalidStatusTransition with errors.Is.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("%s from %s to %s", ErrInvalidStatusTransition, e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
