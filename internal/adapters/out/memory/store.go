// Package memory keeps orders in process memory. It backs STORAGE=memory and
// honours the same contracts as the PostgreSQL adapter: whole-aggregate saves,
// optimistic versioning and transactional units of work.
package memory

import (
	"sort"
	"sync"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// snapshot is the stored state of one order. Orders handed to callers are
// always rebuilt from it, so callers never share memory with the store.
type snapshot struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	items      []order.OrderItem
	status     order.Status
	createdAt  time.Time
	updatedAt  time.Time
	version    int
}

func takeSnapshot(o *order.Order, version int) snapshot {
	return snapshot{
		id:         o.ID(),
		customerID: o.CustomerID(),
		items:      o.Items(),
		status:     o.Status(),
		createdAt:  o.CreatedAt(),
		updatedAt:  o.UpdatedAt(),
		version:    version,
	}
}

func (s snapshot) restore() (*order.Order, error) {
	items := make([]order.OrderItem, len(s.items))
	copy(items, s.items)
	return order.RestoreOrder(s.id, s.customerID, items, s.status, s.createdAt, s.updatedAt, s.version)
}

// Store is the shared backing map. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.OrderID]snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{orders: make(map[kernel.OrderID]snapshot)}
}

// Len reports the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// CountByStatus returns one entry per valid status, zero counts included.
func (s *Store) CountByStatus() map[order.Status]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[order.Status]int64, len(order.AllStatuses()))
	for _, status := range order.AllStatuses() {
		counts[status] = 0
	}
	for _, snap := range s.orders {
		counts[snap.status]++
	}
	return counts
}

// Uncompleted returns the orders that are not yet delivered or cancelled,
// oldest first.
func (s *Store) Uncompleted() ([]*order.Order, error) {
	s.mu.RLock()
	var open []snapshot
	for _, snap := range s.orders {
		if !snap.status.IsTerminal() {
			open = append(open, snap)
		}
	}
	s.mu.RUnlock()

	sortOldestFirst(open)

	orders := make([]*order.Order, 0, len(open))
	for _, snap := range open {
		o, err := snap.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) get(id kernel.OrderID) (snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.orders[id]
	return snap, ok
}

func (s *Store) byCustomer(customerID kernel.CustomerID) []snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []snapshot
	for _, snap := range s.orders {
		if snap.customerID.IsEqual(customerID) {
			found = append(found, snap)
		}
	}
	return found
}

// apply runs a batch of changes atomically: either every change matches the
// version it was based on and all are applied, or none is.
func (s *Store) apply(changes []change) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range changes {
		if err := s.check(c); err != nil {
			return err
		}
	}
	for _, c := range changes {
		if c.deleted {
			delete(s.orders, c.id)
			continue
		}
		s.orders[c.id] = c.snap
	}
	return nil
}

// check must be called with mu held.
func (s *Store) check(c change) error {
	current, exists := s.orders[c.id]
	if c.deleted {
		if !exists {
			return errs.NewObjectNotFoundError("order", c.id.String())
		}
		if current.version != c.baseVersion {
			return errs.ErrConcurrentModification
		}
		return nil
	}
	if c.baseVersion == 0 {
		if exists {
			return errs.ErrConcurrentModification
		}
		return nil
	}
	if !exists || current.version != c.baseVersion {
		return errs.ErrConcurrentModification
	}
	return nil
}

// change is one pending write. baseVersion is the stored version the write
// was computed against, 0 for an insert.
type change struct {
	id          kernel.OrderID
	snap        snapshot
	deleted     bool
	baseVersion int
}

func sortOldestFirst(snaps []snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].createdAt.Equal(snaps[j].createdAt) {
			return snaps[i].createdAt.Before(snaps[j].createdAt)
		}
		return snaps[i].id.String() < snaps[j].id.String()
	})
}
