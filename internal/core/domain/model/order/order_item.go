package order

import (
	"errors"
	"math"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxQuantity is the largest quantity a single line may hold.
const MaxQuantity = math.MaxInt32

// OrderItem is a line of an order. It is owned by exactly one Order and is
// never shared between orders.
//
// Invariants:
//   - product name is not blank
//   - quantity is between 1 and MaxQuantity
//   - unit price is a constructed Money value
type OrderItem struct {
	id          kernel.OrderItemID
	productID   kernel.ProductID
	productName string
	quantity    uint
	unitPrice   kernel.Money
	guard       guard.ConstructorGuard
}

// NewOrderItem creates a line item with a fresh identifier. All invalid
// arguments are reported together.
//
// Example:
//
//	price, _ := kernel.NewMoney(decimal.RequireFromString("10.00"), kernel.EUR)
//	item, err := order.NewOrderItem(kernel.NewProductID(), "Keyboard", 3, price)
//	// item.Subtotal() == 30.00 EUR
func NewOrderItem(
	productID kernel.ProductID,
	productName string,
	quantity uint,
	unitPrice kernel.Money,
) (OrderItem, error) {
	return RestoreOrderItem(kernel.NewOrderItemID(), productID, productName, quantity, unitPrice)
}

// RestoreOrderItem rebuilds an item with a known identifier, typically when
// loading an order from storage. It applies the same validation as NewOrderItem.
func RestoreOrderItem(
	id kernel.OrderItemID,
	productID kernel.ProductID,
	productName string,
	quantity uint,
	unitPrice kernel.Money,
) (OrderItem, error) {
	item := OrderItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

func (i OrderItem) Validate() error {
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

func (i OrderItem) ID() kernel.OrderItemID {
	return i.id
}

func (i OrderItem) ProductID() kernel.ProductID {
	return i.productID
}

func (i OrderItem) ProductName() string {
	return i.productName
}

func (i OrderItem) Quantity() uint {
	return i.quantity
}

func (i OrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price × quantity in the unit price currency.
func (i OrderItem) Subtotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

// ChangeQuantity sets a new quantity. On ErrInvalidQuantity the item is unchanged.
func (i *OrderItem) ChangeQuantity(quantity uint) error {
	return i.setQuantity(quantity)
}

func (i *OrderItem) setID(id kernel.OrderItemID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setProductID(productID kernel.ProductID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *OrderItem) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProductName
	}
	i.productName = name
	return nil
}

func (i *OrderItem) setQuantity(quantity uint) error {
	if quantity == 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", quantity, 1, MaxQuantity, ErrInvalidQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *OrderItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("unit price", err)
	}
	i.unitPrice = price
	return nil
}
