package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrCountOrdersByStatusQueryIsNotConstructed = errors.New(
	"CountOrdersByStatusQuery must be created via NewCountOrdersByStatusQuery constructor",
)

// CountOrdersByStatusQuery counts stored orders per lifecycle status.
type CountOrdersByStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewCountOrdersByStatusQuery creates the parameterless statistics query.
func NewCountOrdersByStatusQuery() CountOrdersByStatusQuery {
	return CountOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStatusQueryIsNotConstructed)
}

// CountOrdersByStatusQueryResponse holds one entry per valid status, zero
// counts included.
type CountOrdersByStatusQueryResponse map[order.Status]int64

// CountOrdersByStatusQueryHandler aggregates directly in PostgreSQL.
type CountOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountOrdersByStatusQueryHandler(db *gorm.DB) CountOrdersByStatusQueryHandler {
	return CountOrdersByStatusQueryHandler{db: db}
}

func (h CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) (CountOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts := make(CountOrdersByStatusQueryResponse)
	for _, status := range order.AllStatuses() {
		counts[status] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return nil, errs.NewDatabaseError("count orders by status", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		var count int64
		if err = rows.Scan(&raw, &count); err != nil {
			return nil, errs.NewDatabaseError("scan order status count", err)
		}

		status, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("iterate order status counts", err)
	}

	return counts, nil
}
