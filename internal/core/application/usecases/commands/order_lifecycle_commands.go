package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrConfirmOrderCommandIsNotConstructed = errors.New("ConfirmOrderCommand must be created via NewConfirmOrderCommand")
	ErrPayOrderCommandIsNotConstructed     = errors.New("PayOrderCommand must be created via NewPayOrderCommand")
	ErrShipOrderCommandIsNotConstructed    = errors.New("ShipOrderCommand must be created via NewShipOrderCommand")
	ErrDeliverOrderCommandIsNotConstructed = errors.New("DeliverOrderCommand must be created via NewDeliverOrderCommand")
	ErrCancelOrderCommandIsNotConstructed  = errors.New("CancelOrderCommand must be created via NewCancelOrderCommand")
)

// ConfirmOrderCommand moves a pending order to Confirmed.
type ConfirmOrderCommand struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID kernel.OrderID) (ConfirmOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// PayOrderCommand records the payment of a confirmed order.
type PayOrderCommand struct {
	orderID   kernel.OrderID
	paymentID kernel.PaymentID
	guard     guard.ConstructorGuard
}

func NewPayOrderCommand(orderID kernel.OrderID, paymentID kernel.PaymentID) (PayOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), paymentID.Validate()); err != nil {
		return PayOrderCommand{}, err
	}
	return PayOrderCommand{orderID: orderID, paymentID: paymentID, guard: guard.NewConstructorGuard()}, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c PayOrderCommand) PaymentID() kernel.PaymentID {
	return c.paymentID
}

// ShipOrderCommand hands a paid order to the carrier. The tracking number is
// checked by the aggregate.
type ShipOrderCommand struct {
	orderID        kernel.OrderID
	trackingNumber string
	guard          guard.ConstructorGuard
}

func NewShipOrderCommand(orderID kernel.OrderID, trackingNumber string) (ShipOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipOrderCommand{}, err
	}
	return ShipOrderCommand{orderID: orderID, trackingNumber: trackingNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c ShipOrderCommand) TrackingNumber() string {
	return c.trackingNumber
}

// DeliverOrderCommand marks a shipped order as delivered.
type DeliverOrderCommand struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID kernel.OrderID) (DeliverOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CancelOrderCommand cancels a pending or confirmed order.
type CancelOrderCommand struct {
	orderID kernel.OrderID
	reason  string
	guard   guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.OrderID, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: orderID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}
