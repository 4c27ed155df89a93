package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// orderPipeline holds the persistence and publication steps shared by all
// order command handlers.
type orderPipeline struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// save persists o in its own unit of work. Nothing is published here.
func (p orderPipeline) save(ctx context.Context, o *order.Order) error {
	return p.inTransaction(ctx, func(repo ports.OrderRepository) error {
		if err := repo.Save(ctx, o); err != nil {
			return fmt.Errorf("save order %s: %w", o.ID(), err)
		}
		return nil
	})
}

// mutate loads the order, applies change and saves the result in one unit of
// work, then publishes the recorded events. A failing change leaves storage
// untouched.
func (p orderPipeline) mutate(ctx context.Context, id kernel.OrderID, change func(*order.Order) error) error {
	var changed *order.Order

	err := p.inTransaction(ctx, func(repo ports.OrderRepository) error {
		o, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load order %s: %w", id, err)
		}
		if err = change(o); err != nil {
			return err
		}
		if err = repo.Save(ctx, o); err != nil {
			return fmt.Errorf("save order %s: %w", id, err)
		}
		changed = o
		return nil
	})
	if err != nil {
		return err
	}

	return p.publish(ctx, changed.TakeEvents())
}

func (p orderPipeline) inTransaction(ctx context.Context, work func(ports.OrderRepository) error) error {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := work(uow.OrderRepository()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// publish sends events in recorded order and stops at the first failure.
// Events already published are neither retried nor compensated.
func (p orderPipeline) publish(ctx context.Context, events []order.Event) error {
	for _, event := range events {
		if err := p.publisher.Publish(ctx, event); err != nil {
			return fmt.Errorf("publish %s for order %s: %w", event.EventName(), event.OrderID(), err)
		}
	}
	return nil
}
