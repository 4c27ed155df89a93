// Package orderrepo persists the order aggregate in PostgreSQL through GORM.
// An order is stored as one row in "orders" plus one row per line in
// "order_items"; both are always written together.
package orderrepo

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the "orders" row. Version is the optimistic concurrency token.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     string          `gorm:"type:varchar(16);not null;index"`
	Currency   string          `gorm:"type:char(3);not null"`
	Total      decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version    int             `gorm:"not null"`
	Items      []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an "order_items" row. Position keeps the line order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    uint            `gorm:"type:integer;not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Currency    string          `gorm:"type:char(3);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain maps the aggregate to rows. The row version is the version the
// aggregate will have once this save succeeds.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().UUID().Value()
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))

	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:          item.ID().UUID().Value(),
			OrderID:     orderID,
			Position:    i,
			ProductID:   item.ProductID().UUID().Value(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			Currency:    item.UnitPrice().Currency().String(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		CustomerID: aggregate.CustomerID().UUID().Value(),
		Status:     aggregate.Status().String(),
		Currency:   aggregate.Total().Currency().String(),
		Total:      aggregate.Total().Amount(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		Version:    aggregate.Version() + 1,
		Items:      itemDTOs,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so stored rows are
// held to the same invariants as new orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	orderID, err := orderIDFromRow(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := customerIDFromRow(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		orderID,
		customerID,
		items,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	)
}

func itemToDomain(dto OrderItemDTO) (order.OrderItem, error) {
	rawID, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return order.OrderItem{}, err
	}
	itemID, err := kernel.OrderItemIDFromUUID(rawID)
	if err != nil {
		return order.OrderItem{}, err
	}
	rawProductID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return order.OrderItem{}, err
	}
	productID, err := kernel.ProductIDFromUUID(rawProductID)
	if err != nil {
		return order.OrderItem{}, err
	}
	currency, err := kernel.ParseCurrency(dto.Currency)
	if err != nil {
		return order.OrderItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return order.OrderItem{}, err
	}

	return order.RestoreOrderItem(itemID, productID, dto.ProductName, dto.Quantity, price)
}

func orderIDFromRow(id uuid.UUID) (kernel.OrderID, error) {
	raw, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.OrderID{}, errors.Join(errors.New("stored order id is invalid"), err)
	}
	return kernel.OrderIDFromUUID(raw)
}

func customerIDFromRow(id uuid.UUID) (kernel.CustomerID, error) {
	raw, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.CustomerID{}, errors.Join(errors.New("stored customer id is invalid"), err)
	}
	return kernel.CustomerIDFromUUID(raw)
}
