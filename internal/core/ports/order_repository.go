// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, transactions and event publication.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Save upserts the whole aggregate, order and items, as one unit.
	// An order whose Version no longer matches storage is rejected with
	// errs.ErrConcurrentModification; on success the aggregate's version is
	// incremented. Other storage failures are reported as *errs.DatabaseError.
	Save(ctx context.Context, aggregate *order.Order) error

	// FindByID returns the order or *errs.ObjectNotFoundError.
	FindByID(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// FindByCustomer returns the customer's orders, oldest first. An unknown
	// customer yields an empty slice.
	FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error)

	// Delete removes the order and its items, or returns *errs.ObjectNotFoundError.
	// Inside a unit of work, an order changed by another writer before commit
	// is reported as errs.ErrConcurrentModification.
	Delete(ctx context.Context, id kernel.OrderID) error
}
