package commands

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New("DeleteOrderCommand must be created via NewDeleteOrderCommand")

// DeleteOrderCommand removes an order and its items from storage.
type DeleteOrderCommand struct {
	orderID kernel.OrderID
	guard   guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.OrderID) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

type DeleteOrderCommandHandler struct {
	pipeline orderPipeline
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{pipeline: orderPipeline{uowFactory: uowFactory}}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pipeline.inTransaction(ctx, func(repo ports.OrderRepository) error {
		if err := repo.Delete(ctx, cmd.OrderID()); err != nil {
			return fmt.Errorf("delete order %s: %w", cmd.OrderID(), err)
		}
		return nil
	})
}
