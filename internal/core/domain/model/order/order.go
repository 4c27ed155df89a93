package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// Clock returns the current time. Orders stamp created/updated times and
// events with it.
type Clock func() time.Time

// Option configures an Order at construction or restore time.
type Option func(*Order)

// WithClock replaces the default UTC wall clock.
func WithClock(clock Clock) Option {
	return func(o *Order) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Order is the aggregate root of the ordering domain. Every change to the
// order, its items or its status goes through its methods.
//
// Order follows these invariants:
//   - it always holds at least one item
//   - total equals the sum of item subtotals, all in one currency
//   - status changes only along a legal transition (see Status)
//   - items change only while the order is Pending
//   - updatedAt >= createdAt and never moves backwards
//
// Every method validates first and mutates last, so a failed call leaves the
// order exactly as it was. Lifecycle transitions append an Event to an
// in-memory buffer that the caller drains with TakeEvents after persisting.
//
// Order is not safe for concurrent use. Concurrent writers to the same order
// are detected by the repository through Version.
type Order struct {
	id         kernel.OrderID
	customerID kernel.CustomerID
	items      []OrderItem
	status     Status
	total      kernel.Money
	createdAt  time.Time
	updatedAt  time.Time
	version    int
	events     []Event
	clock      Clock
	guard      guard.ConstructorGuard
}

// NewOrder creates a Pending order for customerID holding items and records
// OrderCreated.
//
// Returns:
//   - ErrEmptyOrder if items is empty
//   - kernel.ErrCurrencyMismatch if the items are priced in different currencies
//   - a validation error for an unconstructed customer id or item
//
// Example:
//
//	item, _ := order.NewOrderItem(productID, "Keyboard", 1, price)
//	o, err := order.NewOrder(customerID, []order.OrderItem{item})
//	if err != nil {
//	    return err
//	}
//	events := o.TakeEvents() // [OrderCreated]
func NewOrder(customerID kernel.CustomerID, items []OrderItem, opts ...Option) (*Order, error) {
	o := &Order{
		id:     kernel.NewOrderID(),
		status: Pending,
		clock:  defaultClock,
		guard:  guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	now := o.clock()
	o.createdAt = now
	o.updatedAt = now
	o.record(OrderCreated{
		eventBase:  eventBase{orderID: o.id, occurredAt: now},
		CustomerID: o.customerID,
		Total:      o.total,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. No events are recorded.
// The total is recomputed from items rather than trusted from storage.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	items []OrderItem,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
	opts ...Option,
) (*Order, error) {
	o := &Order{
		clock: defaultClock,
		guard: guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setStatus(status),
		o.setTimestamps(createdAt, updatedAt),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the persisted revision the order was loaded at; 0 for an order
// that has never been saved.
func (o *Order) Version() int {
	return o.version
}

// IncrementVersion is called by repositories after a successful save. Inside
// a unit of work that is later rolled back the order must be reloaded.
func (o *Order) IncrementVersion() {
	o.version++
}

// Confirm moves a Pending order to Confirmed and records OrderConfirmed.
func (o *Order) Confirm() error {
	at, err := o.transitionTo(Confirmed)
	if err != nil {
		return err
	}
	o.record(OrderConfirmed{eventBase: eventBase{orderID: o.id, occurredAt: at}})
	return nil
}

// MarkAsPaid moves a Confirmed order to Paid and records OrderPaid.
func (o *Order) MarkAsPaid(paymentID kernel.PaymentID) error {
	if err := o.checkTransition(Paid); err != nil {
		return err
	}
	if err := paymentID.Validate(); err != nil {
		return err
	}

	at, err := o.transitionTo(Paid)
	if err != nil {
		return err
	}
	o.record(OrderPaid{eventBase: eventBase{orderID: o.id, occurredAt: at}, PaymentID: paymentID})
	return nil
}

// Ship moves a Paid order to Shipped and records OrderShipped.
// trackingNumber must not be blank.
func (o *Order) Ship(trackingNumber string) error {
	if err := o.checkTransition(Shipped); err != nil {
		return err
	}
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	at, err := o.transitionTo(Shipped)
	if err != nil {
		return err
	}
	o.record(OrderShipped{eventBase: eventBase{orderID: o.id, occurredAt: at}, TrackingNumber: trackingNumber})
	return nil
}

// Deliver moves a Shipped order to Delivered and records OrderDelivered.
func (o *Order) Deliver() error {
	at, err := o.transitionTo(Delivered)
	if err != nil {
		return err
	}
	o.record(OrderDelivered{eventBase: eventBase{orderID: o.id, occurredAt: at}})
	return nil
}

// Cancel cancels a Pending or Confirmed order and records OrderCancelled.
//
// Returns:
//   - ErrCannotCancelTerminalOrder if the order is Delivered or Cancelled
//   - *InvalidStatusTransitionError if the order is Paid or Shipped
func (o *Order) Cancel(reason string) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrCannotCancelTerminalOrder, o.status)
	}

	at, err := o.transitionTo(Cancelled)
	if err != nil {
		return err
	}
	o.record(OrderCancelled{eventBase: eventBase{orderID: o.id, occurredAt: at}, Reason: reason})
	return nil
}

// AddItem appends item and recomputes the total. Item edits record no event.
func (o *Order) AddItem(item OrderItem) error {
	if !o.status.CanBeModified() {
		return ErrCannotModifyNonPendingOrder
	}
	if err := item.Validate(); err != nil {
		return err
	}

	items := append(o.Items(), item)
	total, err := calculateTotal(items)
	if err != nil {
		return err
	}

	o.items = items
	o.total = total
	o.touch()
	return nil
}

// RemoveItem removes the item with itemID and recomputes the total.
// Checks run in order: status, item existence, last item.
func (o *Order) RemoveItem(itemID kernel.OrderItemID) error {
	if !o.status.CanBeModified() {
		return ErrCannotModifyNonPendingOrder
	}

	idx := o.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrOrderItemNotFound, itemID)
	}
	if len(o.items) == 1 {
		return ErrCannotRemoveLastItem
	}

	items := make([]OrderItem, 0, len(o.items)-1)
	items = append(items, o.items[:idx]...)
	items = append(items, o.items[idx+1:]...)
	total, err := calculateTotal(items)
	if err != nil {
		return err
	}

	o.items = items
	o.total = total
	o.touch()
	return nil
}

// ChangeItemQuantity updates the quantity of a line and recomputes the total.
func (o *Order) ChangeItemQuantity(itemID kernel.OrderItemID, quantity uint) error {
	if !o.status.CanBeModified() {
		return ErrCannotModifyNonPendingOrder
	}

	idx := o.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrOrderItemNotFound, itemID)
	}

	items := o.Items()
	if err := items[idx].ChangeQuantity(quantity); err != nil {
		return err
	}
	total, err := calculateTotal(items)
	if err != nil {
		return err
	}

	o.items = items
	o.total = total
	o.touch()
	return nil
}

// TakeEvents returns the recorded events in order and clears the buffer.
// A second call without intervening transitions returns an empty slice.
func (o *Order) TakeEvents() []Event {
	events := o.events
	o.events = nil
	if events == nil {
		return []Event{}
	}
	return events
}

// Events returns a copy of the pending events without draining them.
func (o *Order) Events() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

func (o *Order) checkTransition(target Status) error {
	if !o.status.CanTransitionTo(target) {
		return &InvalidStatusTransitionError{From: o.status, To: target}
	}
	return nil
}

func (o *Order) transitionTo(target Status) (time.Time, error) {
	if err := o.checkTransition(target); err != nil {
		return time.Time{}, err
	}
	o.status = target
	return o.touch(), nil
}

// touch advances updatedAt to the clock's time, never backwards.
func (o *Order) touch() time.Time {
	now := o.clock()
	if now.Before(o.updatedAt) {
		now = o.updatedAt
	}
	o.updatedAt = now
	return now
}

func (o *Order) record(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) indexOf(itemID kernel.OrderItemID) int {
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return i
		}
	}
	return -1
}

// calculateTotal sums subtotals starting from the first item's currency.
func calculateTotal(items []OrderItem) (kernel.Money, error) {
	if len(items) == 0 {
		return kernel.Money{}, ErrEmptyOrder
	}

	total := items[0].Subtotal()
	for _, item := range items[1:] {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return kernel.Money{}, err
		}
		total = sum
	}
	return total, nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	total, err := calculateTotal(items)
	if err != nil {
		return err
	}

	o.items = make([]OrderItem, len(items))
	copy(o.items, items)
	o.total = total
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updated at",
			fmt.Errorf("%s is before created at %s", updatedAt, createdAt))
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "unbounded")
	}
	o.version = version
	return nil
}
