package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed    = errors.New("AddOrderItemCommand must be created via NewAddOrderItemCommand")
	ErrRemoveOrderItemCommandIsNotConstructed = errors.New("RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand")
)

// AddOrderItemCommand appends a line to a pending order.
type AddOrderItemCommand struct {
	orderID kernel.OrderID
	item    CreateOrderItem
	guard   guard.ConstructorGuard
}

func NewAddOrderItemCommand(orderID kernel.OrderID, item CreateOrderItem) (AddOrderItemCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddOrderItemCommand{}, err
	}
	return AddOrderItemCommand{orderID: orderID, item: item, guard: guard.NewConstructorGuard()}, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c AddOrderItemCommand) Item() CreateOrderItem {
	return c.item
}

// RemoveOrderItemCommand drops a line from a pending order.
type RemoveOrderItemCommand struct {
	orderID kernel.OrderID
	itemID  kernel.OrderItemID
	guard   guard.ConstructorGuard
}

func NewRemoveOrderItemCommand(orderID kernel.OrderID, itemID kernel.OrderItemID) (RemoveOrderItemCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return RemoveOrderItemCommand{}, err
	}
	return RemoveOrderItemCommand{orderID: orderID, itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}

func (c RemoveOrderItemCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c RemoveOrderItemCommand) ItemID() kernel.OrderItemID {
	return c.itemID
}

// AddOrderItemCommandHandler builds the item, adds it to the order and saves.
// Item edits record no events, so nothing is published.
type AddOrderItemCommandHandler struct {
	pipeline orderPipeline
}

func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

// Handle returns the identifier of the new line.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (kernel.OrderItemID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderItemID{}, err
	}

	line := cmd.Item()
	item, err := order.NewOrderItem(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
	if err != nil {
		return kernel.OrderItemID{}, err
	}

	if err = h.pipeline.mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.AddItem(item)
	}); err != nil {
		return kernel.OrderItemID{}, err
	}

	return item.ID(), nil
}

type RemoveOrderItemCommandHandler struct {
	pipeline orderPipeline
}

func NewRemoveOrderItemCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher}}
}

func (h *RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.mutate(ctx, cmd.OrderID(), func(o *order.Order) error {
		return o.RemoveItem(cmd.ItemID())
	})
}
