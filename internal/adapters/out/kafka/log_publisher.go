package kafka

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
)

// LogEventPublisher writes every event to a structured log instead of a
// broker. It is used when KAFKA_BROKERS is empty.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger.With("component", "LogEventPublisher")}
}

func (p *LogEventPublisher) Publish(ctx context.Context, event order.Event) error {
	payload, err := order.MarshalEvent(event)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "domain event published",
		"event_type", event.EventName(),
		"order_id", event.OrderID().String(),
		"occurred_at", event.OccurredAt(),
		"payload", string(payload),
	)
	return nil
}

// NoopEventPublisher drops every event.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, order.Event) error {
	return nil
}
