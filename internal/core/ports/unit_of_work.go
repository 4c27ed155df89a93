package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code owns the
// lifecycle: Begin, work through OrderRepository, then Commit or Rollback.
//
// Save increments an aggregate's version as soon as the write is staged. When
// the transaction is rolled back or its commit fails, aggregates saved through
// it are one version ahead of storage and must be discarded; saving one again
// fails with errs.ErrConcurrentModification. Reload with FindByID instead.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it again on an open unit is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
