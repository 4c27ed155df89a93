package memory

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store. Writes go
// straight to the store unless the repository belongs to an open unit of
// work, in which case they are staged until Commit.
type OrderRepository struct {
	store *Store
	tx    *staging
}

// NewOrderRepository returns a repository that writes directly to store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	c := change{
		id:          aggregate.ID(),
		snap:        takeSnapshot(aggregate, aggregate.Version()+1),
		baseVersion: aggregate.Version(),
	}

	if r.tx != nil {
		if err := r.tx.stage(r.store, c); err != nil {
			return err
		}
	} else if err := r.store.apply([]change{c}); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	snap, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return snap.restore()
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	snaps := r.store.byCustomer(customerID)
	if r.tx != nil {
		snaps = r.tx.overlay(snaps, customerID)
	}
	sortOldestFirst(snaps)

	orders := make([]*order.Order, 0, len(snaps))
	for _, snap := range snaps {
		o, err := snap.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return err
	}

	snap, ok := r.lookup(id)
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	c := change{id: id, deleted: true, baseVersion: snap.version}
	if r.tx != nil {
		return r.tx.stage(r.store, c)
	}
	return r.store.apply([]change{c})
}

func (r *OrderRepository) lookup(id kernel.OrderID) (snapshot, bool) {
	if r.tx != nil {
		if snap, staged, ok := r.tx.get(id); staged {
			return snap, ok
		}
	}
	return r.store.get(id)
}
