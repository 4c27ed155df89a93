// Package queries contains read-only operations over orders.
// Implements the Query side of CQRS: handlers validate the query and return
// plain view structs ready for serialization.
package queries

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderItemView is the read representation of an order line.
type OrderItemView struct {
	ID          kernel.OrderItemID `json:"id"`
	ProductID   kernel.ProductID   `json:"product_id"`
	ProductName string             `json:"product_name"`
	Quantity    uint               `json:"quantity"`
	UnitPrice   kernel.Money       `json:"unit_price"`
	Subtotal    kernel.Money       `json:"subtotal"`
}

// OrderView is the read representation of an order.
type OrderView struct {
	ID         kernel.OrderID    `json:"id"`
	CustomerID kernel.CustomerID `json:"customer_id"`
	Status     order.Status      `json:"status"`
	Total      kernel.Money      `json:"total"`
	Items      []OrderItemView   `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Version    int               `json:"version"`
}

func newOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, OrderItemView{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		})
	}

	return OrderView{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     o.Status(),
		Total:      o.Total(),
		Items:      views,
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Version:    o.Version(),
	}
}
