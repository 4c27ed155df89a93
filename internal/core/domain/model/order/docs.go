// Package order provides the Order aggregate of the ordering domain.
//
// The package includes:
//   - Order: the aggregate root owning items, status, total and pending events
//   - OrderItem: a line of an order, validated on construction
//   - Status: the lifecycle state machine
//   - Event: the closed set of lifecycle events and their JSON form
//
// Key business rules:
//   - an order always holds at least one item
//   - all items of an order are priced in the same currency
//   - items can only be changed while the order is Pending
//   - status follows Pending -> Confirmed -> Paid -> Shipped -> Delivered,
//     with cancellation allowed from Pending and Confirmed
//
// The aggregate never logs and never swallows errors. Events are buffered on
// the aggregate and drained once by the application layer after persistence.
package order
