package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ConfirmOrderCommandHandler loads the order, confirms it, saves it and
// publishes OrderConfirmed. The other lifecycle handlers follow the same flow.
type ConfirmOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), (*order.Order).Confirm)
}

type PayOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) PayOrderCommandHandler {
	return PayOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkAsPaid(cmd.PaymentID())
	})
}

type ShipOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Ship(cmd.TrackingNumber())
	})
}

type DeliverOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), (*order.Order).Deliver)
}

type CancelOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel(cmd.Reason())
	})
}
