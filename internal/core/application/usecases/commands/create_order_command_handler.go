package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// CreateOrderCommandHandler places new orders.
//
// Each step gates the next and the first failure is returned:
//  1. every line becomes an order.OrderItem (validation errors as-is)
//  2. the order aggregate is built (ErrEmptyOrder, currency mismatch as-is)
//  3. the order is saved and committed; on failure nothing is published
//  4. recorded events are published in order; the first failure stops the rest
//
// A failure in step 4 does not undo step 3: the order stays persisted.
type CreateOrderCommandHandler struct {
	pipeline orderPipeline
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		pipeline: orderPipeline{uowFactory: uowFactory, publisher: publisher},
	}
}

// Handle creates the order and returns its identifier. When only publication
// fails, the identifier of the persisted order is returned with the error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	lines := cmd.Items()
	items := make([]order.OrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewOrderItem(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return kernel.OrderID{}, err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.CustomerID(), items)
	if err != nil {
		return kernel.OrderID{}, err
	}

	if err = h.pipeline.save(ctx, o); err != nil {
		return kernel.OrderID{}, err
	}

	if err = h.pipeline.publish(ctx, o.TakeEvents()); err != nil {
		return o.ID(), err
	}

	return o.ID(), nil
}
