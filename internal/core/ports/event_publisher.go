package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventPublisher delivers one domain event to the outside world. Callers
// publish events in the order the aggregate recorded them; the publisher
// makes no further ordering promise.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}
