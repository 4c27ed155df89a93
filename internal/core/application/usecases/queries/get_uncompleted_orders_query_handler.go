package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler reads open orders straight from the
// orders table without loading their items.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for open order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle returns orders in a non-terminal status sorted by creation time,
// then id. The result is never nil.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			total,
			currency,
			created_at
		FROM orders
		WHERE status NOT IN ?
		ORDER BY created_at, id
	`, []string{order.Delivered.String(), order.Cancelled.String()}).Rows()
	if err != nil {
		return nil, errs.NewDatabaseError("get uncompleted orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row struct {
			id         uuid.UUID
			customerID uuid.UUID
			status     string
			total      decimal.Decimal
			currency   string
		}
		var resp GetUncompletedOrdersQueryResponse

		err = rows.Scan(&row.id, &row.customerID, &row.status, &row.total, &row.currency, &resp.CreatedAt)
		if err != nil {
			return nil, errs.NewDatabaseError("scan uncompleted order", err)
		}

		if resp.ID, err = orderIDFromColumn(row.id); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = customerIDFromColumn(row.customerID); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(row.status); err != nil {
			return nil, err
		}
		var currency kernel.Currency
		if currency, err = kernel.ParseCurrency(row.currency); err != nil {
			return nil, err
		}
		if resp.Total, err = kernel.NewMoney(row.total, currency); err != nil {
			return nil, err
		}
		resp.CreatedAt = resp.CreatedAt.UTC()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("iterate uncompleted orders", err)
	}

	return orders, nil
}

func orderIDFromColumn(id uuid.UUID) (kernel.OrderID, error) {
	raw, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.OrderID{}, err
	}
	return kernel.OrderIDFromUUID(raw)
}

func customerIDFromColumn(id uuid.UUID) (kernel.CustomerID, error) {
	raw, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.CustomerID{}, err
	}
	return kernel.CustomerIDFromUUID(raw)
}
