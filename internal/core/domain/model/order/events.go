package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

const (
	EventNameOrderCreated   = "ORDER_CREATED"
	EventNameOrderConfirmed = "ORDER_CONFIRMED"
	EventNameOrderPaid      = "ORDER_PAID"
	EventNameOrderShipped   = "ORDER_SHIPPED"
	EventNameOrderDelivered = "ORDER_DELIVERED"
	EventNameOrderCancelled = "ORDER_CANCELLED"
)

// ErrUnknownEventType is returned by UnmarshalEvent for an unrecognised "type" tag.
var ErrUnknownEventType = errors.New("unknown order event type")

// Event is a record of a lifecycle transition of an Order. The set of
// implementations is closed: only the types in this file satisfy it, so a type
// switch over OrderCreated, OrderConfirmed, OrderPaid, OrderShipped,
// OrderDelivered and OrderCancelled is exhaustive.
type Event interface {
	OrderID() kernel.OrderID
	OccurredAt() time.Time
	EventName() string
	isOrderEvent()
}

type eventBase struct {
	orderID    kernel.OrderID
	occurredAt time.Time
}

func (e eventBase) OrderID() kernel.OrderID {
	return e.orderID
}

func (e eventBase) OccurredAt() time.Time {
	return e.occurredAt
}

func (eventBase) isOrderEvent() {}

// OrderCreated is recorded once, when the order is constructed.
type OrderCreated struct {
	eventBase
	CustomerID kernel.CustomerID
	Total      kernel.Money
}

func (OrderCreated) EventName() string { return EventNameOrderCreated }

type OrderConfirmed struct {
	eventBase
}

func (OrderConfirmed) EventName() string { return EventNameOrderConfirmed }

type OrderPaid struct {
	eventBase
	PaymentID kernel.PaymentID
}

func (OrderPaid) EventName() string { return EventNameOrderPaid }

type OrderShipped struct {
	eventBase
	TrackingNumber string
}

func (OrderShipped) EventName() string { return EventNameOrderShipped }

type OrderDelivered struct {
	eventBase
}

func (OrderDelivered) EventName() string { return EventNameOrderDelivered }

type OrderCancelled struct {
	eventBase
	Reason string
}

func (OrderCancelled) EventName() string { return EventNameOrderCancelled }

// eventEnvelope is the wire form: a flat object tagged by "type".
type eventEnvelope struct {
	Type           string             `json:"type"`
	OrderID        kernel.OrderID     `json:"order_id"`
	CustomerID     *kernel.CustomerID `json:"customer_id,omitempty"`
	Total          *kernel.Money      `json:"total,omitempty"`
	PaymentID      *kernel.PaymentID  `json:"payment_id,omitempty"`
	TrackingNumber *string            `json:"tracking_number,omitempty"`
	Reason         *string            `json:"reason,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
}

// MarshalEvent encodes e as a tagged JSON object, for example
//
//	{"type":"ORDER_PAID","order_id":"…","payment_id":"…","timestamp":"2024-01-02T15:04:05Z"}
func MarshalEvent(e Event) ([]byte, error) {
	env := eventEnvelope{
		Type:      e.EventName(),
		OrderID:   e.OrderID(),
		Timestamp: e.OccurredAt(),
	}

	switch ev := e.(type) {
	case OrderCreated:
		env.CustomerID = &ev.CustomerID
		env.Total = &ev.Total
	case OrderConfirmed, OrderDelivered:
	case OrderPaid:
		env.PaymentID = &ev.PaymentID
	case OrderShipped:
		env.TrackingNumber = &ev.TrackingNumber
	case OrderCancelled:
		env.Reason = &ev.Reason
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, e)
	}

	return json.Marshal(env)
}

// UnmarshalEvent decodes the output of MarshalEvent.
func UnmarshalEvent(data []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode order event: %w", err)
	}
	if err := env.OrderID.Validate(); err != nil {
		return nil, fmt.Errorf("decode order event: %w", err)
	}

	base := eventBase{orderID: env.OrderID, occurredAt: env.Timestamp}

	switch env.Type {
	case EventNameOrderCreated:
		if env.CustomerID == nil || env.Total == nil {
			return nil, fmt.Errorf("decode %s: customer_id and total are required", env.Type)
		}
		return OrderCreated{eventBase: base, CustomerID: *env.CustomerID, Total: *env.Total}, nil
	case EventNameOrderConfirmed:
		return OrderConfirmed{eventBase: base}, nil
	case EventNameOrderPaid:
		if env.PaymentID == nil {
			return nil, fmt.Errorf("decode %s: payment_id is required", env.Type)
		}
		return OrderPaid{eventBase: base, PaymentID: *env.PaymentID}, nil
	case EventNameOrderShipped:
		if env.TrackingNumber == nil {
			return nil, fmt.Errorf("decode %s: tracking_number is required", env.Type)
		}
		return OrderShipped{eventBase: base, TrackingNumber: *env.TrackingNumber}, nil
	case EventNameOrderDelivered:
		return OrderDelivered{eventBase: base}, nil
	case EventNameOrderCancelled:
		reason := ""
		if env.Reason != nil {
			reason = *env.Reason
		}
		return OrderCancelled{eventBase: base, Reason: reason}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, env.Type)
	}
}
