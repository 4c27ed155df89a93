package memory

import (
	"context"
	"errors"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback on a closed unit.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes and applies them to the store on Commit. Writes
// are checked against the store twice: when staged and again, atomically,
// when committed.
type UnitOfWork struct {
	store *Store
	tx    *staging
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uow.tx == nil {
		uow.tx = newStaging()
	}
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	changes := uow.tx.changes()
	uow.tx = nil
	return uow.store.apply(changes)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	uow.tx = nil
	return nil
}

// OrderRepository returns a repository bound to the open transaction, or a
// direct one when none is open.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, tx: uow.tx}
}

// staging holds the pending writes of one unit of work, last write per order.
type staging struct {
	mu      sync.Mutex
	order   []kernel.OrderID
	pending map[kernel.OrderID]change
}

func newStaging() *staging {
	return &staging{pending: make(map[kernel.OrderID]change)}
}

// stage records c after checking it against what this transaction can see.
// A second write to the same order keeps the first write's base version so
// the commit-time check compares against the stored row.
func (s *staging) stage(store *Store, c change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, staged := s.pending[c.id]
	var visibleVersion int
	var visible bool
	switch {
	case staged && !prev.deleted:
		visibleVersion, visible = prev.snap.version, true
	case staged && prev.deleted:
		visible = false
	default:
		stored, ok := store.get(c.id)
		visibleVersion, visible = stored.version, ok
	}

	if c.deleted {
		if !visible {
			return errs.NewObjectNotFoundError("order", c.id.String())
		}
	} else if c.baseVersion == 0 && visible {
		return errs.ErrConcurrentModification
	} else if c.baseVersion != 0 && (!visible || visibleVersion != c.baseVersion) {
		return errs.ErrConcurrentModification
	}

	if staged && c.deleted && !prev.deleted && prev.baseVersion == 0 {
		// inserted and deleted within this transaction
		delete(s.pending, c.id)
		s.order = removeID(s.order, c.id)
		return nil
	}

	if staged {
		c.baseVersion = prev.baseVersion
	} else {
		s.order = append(s.order, c.id)
	}
	s.pending[c.id] = c
	return nil
}

// get reports the staged state of id. staged is false when this transaction
// has not written id; ok is false when it deleted it.
func (s *staging) get(id kernel.OrderID) (snap snapshot, staged bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, staged := s.pending[id]
	if !staged {
		return snapshot{}, false, false
	}
	if c.deleted {
		return snapshot{}, true, false
	}
	return c.snap, true, true
}

// overlay merges staged writes for customerID into stored snapshots.
func (s *staging) overlay(stored []snapshot, customerID kernel.CustomerID) []snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]snapshot, 0, len(stored))
	for _, snap := range stored {
		if _, staged := s.pending[snap.id]; !staged {
			merged = append(merged, snap)
		}
	}
	for _, id := range s.order {
		c := s.pending[id]
		if !c.deleted && c.snap.customerID.IsEqual(customerID) {
			merged = append(merged, c.snap)
		}
	}
	return merged
}

func (s *staging) changes() []change {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := make([]change, 0, len(s.order))
	for _, id := range s.order {
		changes = append(changes, s.pending[id])
	}
	return changes
}

func removeID(ids []kernel.OrderID, id kernel.OrderID) []kernel.OrderID {
	kept := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}
