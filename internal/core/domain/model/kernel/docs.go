// Package kernel holds the value objects shared by every aggregate of the
// ordering domain: UUID, the typed identifiers built on it (OrderID, CustomerID,
// ProductID, ...), Currency and Money.
//
// All values are immutable. Zero values are not constructed and fail Validate.
package kernel
