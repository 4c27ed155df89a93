package http

import (
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type MoneyRequest struct {
	Amount   string `json:"amount" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required,oneof=EUR USD GBP eur usd gbp"`
}

type OrderItemRequest struct {
	ProductID   string       `json:"product_id" validate:"required,uuid"`
	ProductName string       `json:"product_name" validate:"required"`
	Quantity    uint         `json:"quantity" validate:"required"`
	UnitPrice   MoneyRequest `json:"unit_price"`
}

// CreateOrderRequest leaves an empty item list to the domain, which rejects
// it as a business rule violation.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required,uuid"`
	Items      []OrderItemRequest `json:"items" validate:"dive"`
}

type PayOrderRequest struct {
	PaymentID string `json:"payment_id" validate:"required,uuid"`
}

type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

func (r MoneyRequest) toMoney() (kernel.Money, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	currency, err := kernel.ParseCurrency(r.Currency)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(amount, currency)
}

func (r OrderItemRequest) toCommandItem() (commands.CreateOrderItem, error) {
	productID, err := kernel.ProductIDFromString(r.ProductID)
	if err != nil {
		return commands.CreateOrderItem{}, err
	}
	price, err := r.UnitPrice.toMoney()
	if err != nil {
		return commands.CreateOrderItem{}, err
	}
	return commands.CreateOrderItem{
		ProductID:   productID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   price,
	}, nil
}

func (r CreateOrderRequest) toCommandItems() ([]commands.CreateOrderItem, error) {
	items := make([]commands.CreateOrderItem, 0, len(r.Items))
	for _, line := range r.Items {
		item, err := line.toCommandItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
