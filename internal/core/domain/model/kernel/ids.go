package kernel

import (
	"ordering/internal/pkg/errs"
)

type idKind interface {
	kindName() string
}

type (
	orderKind     struct{}
	orderItemKind struct{}
	customerKind  struct{}
	productKind   struct{}
	paymentKind   struct{}
)

func (orderKind) kindName() string     { return "order id" }
func (orderItemKind) kindName() string { return "order item id" }
func (customerKind) kindName() string  { return "customer id" }
func (productKind) kindName() string   { return "product id" }
func (paymentKind) kindName() string   { return "payment id" }

// ID is a UUID tagged with the kind of entity it identifies. Two IDs of
// different kinds are different Go types, so an OrderID cannot be passed
// where a CustomerID is expected.
type ID[K idKind] struct {
	value UUID
}

type (
	OrderID     = ID[orderKind]
	OrderItemID = ID[orderItemKind]
	CustomerID  = ID[customerKind]
	ProductID   = ID[productKind]
	PaymentID   = ID[paymentKind]
)

func NewOrderID() OrderID         { return OrderID{value: NewUUID()} }
func NewOrderItemID() OrderItemID { return OrderItemID{value: NewUUID()} }
func NewCustomerID() CustomerID   { return CustomerID{value: NewUUID()} }
func NewProductID() ProductID     { return ProductID{value: NewUUID()} }
func NewPaymentID() PaymentID     { return PaymentID{value: NewUUID()} }

func OrderIDFromUUID(u UUID) (OrderID, error)         { return idFromUUID[orderKind](u) }
func OrderItemIDFromUUID(u UUID) (OrderItemID, error) { return idFromUUID[orderItemKind](u) }
func CustomerIDFromUUID(u UUID) (CustomerID, error)   { return idFromUUID[customerKind](u) }
func ProductIDFromUUID(u UUID) (ProductID, error)     { return idFromUUID[productKind](u) }
func PaymentIDFromUUID(u UUID) (PaymentID, error)     { return idFromUUID[paymentKind](u) }

func OrderIDFromString(s string) (OrderID, error)         { return idFromString[orderKind](s) }
func OrderItemIDFromString(s string) (OrderItemID, error) { return idFromString[orderItemKind](s) }
func CustomerIDFromString(s string) (CustomerID, error)   { return idFromString[customerKind](s) }
func ProductIDFromString(s string) (ProductID, error)     { return idFromString[productKind](s) }
func PaymentIDFromString(s string) (PaymentID, error)     { return idFromString[paymentKind](s) }

func idFromUUID[K idKind](u UUID) (ID[K], error) {
	id := ID[K]{value: u}
	if err := id.Validate(); err != nil {
		return ID[K]{}, err
	}
	return id, nil
}

func idFromString[K idKind](s string) (ID[K], error) {
	u, err := UUIDFromString(s)
	if err != nil {
		var k K
		return ID[K]{}, errs.NewValueIsInvalidErrorWithCause(k.kindName(), err)
	}
	return idFromUUID[K](u)
}

func (id ID[K]) String() string {
	return id.value.String()
}

func (id ID[K]) UUID() UUID {
	return id.value
}

func (id ID[K]) IsEqual(other ID[K]) bool {
	return id.value.IsEqual(other.value)
}

// Validate fails for the zero value; the error matches ErrUUIDIsNotConstructed.
func (id ID[K]) Validate() error {
	if err := id.value.Validate(); err != nil {
		var k K
		return errs.NewValueIsRequiredErrorWithCause(k.kindName(), err)
	}
	return nil
}

func (id ID[K]) MarshalText() ([]byte, error) {
	return []byte(id.value.String()), nil
}

func (id *ID[K]) UnmarshalText(text []byte) error {
	parsed, err := idFromString[K](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
