// Package kafka publishes order domain events. KafkaEventPublisher is the
// production transport; LogEventPublisher and NoopEventPublisher serve local
// runs and tests.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries the event name so consumers can route a message
// without decoding its payload.
const EventTypeHeader = "event-type"

var ErrNoBrokers = errors.New("kafka: at least one broker is required")

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEventPublisher writes each event as one message keyed by order id, so
// all events of one order land on the same partition in recorded order.
type KafkaEventPublisher struct {
	writer  messageWriter
	metrics *PublisherMetrics
}

// NewWriter builds a synchronous writer for topic. brokersCSV is a comma
// separated host:port list.
func NewWriter(brokersCSV, topic string) (*kafka.Writer, error) {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, nil
}

// NewKafkaEventPublisher wraps writer. metrics may be nil.
func NewKafkaEventPublisher(writer messageWriter, metrics *PublisherMetrics) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer, metrics: metrics}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event order.Event) error {
	payload, err := order.MarshalEvent(event)
	if err != nil {
		p.metrics.recordFailed(event.EventName())
		return fmt.Errorf("encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID().String()),
		Value: payload,
		Time:  event.OccurredAt().UTC(),
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(event.EventName())},
		},
	}

	start := time.Now()
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.recordFailed(event.EventName())
		return fmt.Errorf("write kafka message: %w", err)
	}

	p.metrics.recordPublished(event.EventName(), time.Since(start))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
