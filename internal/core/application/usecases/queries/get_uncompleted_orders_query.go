package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
		"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
	)
)

// GetUncompletedOrdersQuery lists orders that have not reached a terminal
// status (delivered or cancelled), oldest first.
//
// Example:
//
//	query := NewGetUncompletedOrdersQuery()
//	handler := NewGetUncompletedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("%s %s %s\n", o.ID, o.Status, o.Total)
//	}
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates the parameterless query.
func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// GetUncompletedOrdersQueryResponse is the summary of one open order.
type GetUncompletedOrdersQueryResponse struct {
	ID         kernel.OrderID    `json:"id"`
	CustomerID kernel.CustomerID `json:"customer_id"`
	Status     order.Status      `json:"status"`
	Total      kernel.Money      `json:"total"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewUncompletedOrderSummary summarizes an aggregate loaded by other means.
func NewUncompletedOrderSummary(o *order.Order) GetUncompletedOrdersQueryResponse {
	return GetUncompletedOrdersQueryResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     o.Status(),
		Total:      o.Total(),
		CreatedAt:  o.CreatedAt(),
	}
}
