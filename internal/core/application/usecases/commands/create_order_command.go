package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderItem is one requested line of a new order. It is validated when
// the handler turns it into an order.OrderItem.
type CreateOrderItem struct {
	ProductID   kernel.ProductID
	ProductName string
	Quantity    uint
	UnitPrice   kernel.Money
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	price, _ := kernel.NewMoney(decimal.RequireFromString("19.99"), kernel.EUR)
//	cmd, err := NewCreateOrderCommand(customerID, []CreateOrderItem{
//	    {ProductID: productID, ProductName: "Keyboard", Quantity: 1, UnitPrice: price},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.CustomerID
	items      []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the customer id. Item lines, including an
// empty list, are validated by the domain when the command is handled.
func NewCreateOrderCommand(customerID kernel.CustomerID, items []CreateOrderItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomerID(customerID); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.items = make([]CreateOrderItem, len(items))
	copy(cmd.items, items)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

// Items returns a copy of the requested lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	items := make([]CreateOrderItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
