package kafka

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func createdAndConfirmed(t *testing.T) []order.Event {
	t.Helper()

	price, err := kernel.NewMoney(decimal.NewFromInt(10), kernel.USD)
	require.NoError(t, err)
	item, err := order.NewOrderItem(kernel.NewProductID(), "Cable", 1, price)
	require.NoError(t, err)

	at := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	o, err := order.NewOrder(kernel.NewCustomerID(), []order.OrderItem{item},
		order.WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	require.NoError(t, o.Confirm())

	return o.TakeEvents()
}

func TestKafkaEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	events := createdAndConfirmed(t)
	writer := &fakeWriter{}
	reg := prometheus.NewRegistry()
	publisher := NewKafkaEventPublisher(writer, NewPublisherMetrics(reg))

	for _, event := range events {
		require.NoError(t, publisher.Publish(ctx, event))
	}

	require.Len(t, writer.messages, 2)
	for i, msg := range writer.messages {
		event := events[i]
		assert.Equal(t, event.OrderID().String(), string(msg.Key))
		assert.True(t, event.OccurredAt().Equal(msg.Time))
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, EventTypeHeader, msg.Headers[0].Key)
		assert.Equal(t, event.EventName(), string(msg.Headers[0].Value))

		decoded, err := order.UnmarshalEvent(msg.Value)
		require.NoError(t, err)
		assert.Equal(t, event.EventName(), decoded.EventName())
		assert.True(t, event.OrderID().IsEqual(decoded.OrderID()))
		assert.True(t, event.OccurredAt().Equal(decoded.OccurredAt()))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(publisher.metrics.published.WithLabelValues(order.EventNameOrderCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(publisher.metrics.published.WithLabelValues(order.EventNameOrderConfirmed)))
}

func TestKafkaEventPublisher_WriteFailure(t *testing.T) {
	events := createdAndConfirmed(t)
	brokerDown := errors.New("dial tcp: connection refused")
	reg := prometheus.NewRegistry()
	publisher := NewKafkaEventPublisher(&fakeWriter{err: brokerDown}, NewPublisherMetrics(reg))

	err := publisher.Publish(context.Background(), events[0])

	assert.ErrorIs(t, err, brokerDown)
	assert.Equal(t, 1.0, testutil.ToFloat64(publisher.metrics.failed.WithLabelValues(events[0].EventName())))
	assert.Zero(t, testutil.ToFloat64(publisher.metrics.published.WithLabelValues(events[0].EventName())))
}

func TestKafkaEventPublisher_NilMetrics(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaEventPublisher(writer, nil)

	require.NoError(t, publisher.Publish(context.Background(), createdAndConfirmed(t)[0]))
	require.NoError(t, publisher.Close())

	assert.Len(t, writer.messages, 1)
	assert.True(t, writer.closed)
}

func TestNewWriter(t *testing.T) {
	t.Run("parses broker list", func(t *testing.T) {
		w, err := NewWriter(" kafka-1:9092, ,kafka-2:9092 ", "order-events")

		require.NoError(t, err)
		assert.Equal(t, "order-events", w.Topic)
		assert.Equal(t, "tcp", w.Addr.Network())
	})

	t.Run("empty broker list", func(t *testing.T) {
		_, err := NewWriter(" , ", "order-events")

		assert.ErrorIs(t, err, ErrNoBrokers)
	})
}

func TestLogEventPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	event := createdAndConfirmed(t)[0]

	require.NoError(t, NewLogEventPublisher(logger).Publish(context.Background(), event))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"ORDER_CREATED"`)
	assert.Contains(t, out, event.OrderID().String())
	assert.Contains(t, out, `"component":"LogEventPublisher"`)
}

func TestNoopEventPublisher_Publish(t *testing.T) {
	assert.NoError(t, NoopEventPublisher{}.Publish(context.Background(), createdAndConfirmed(t)[0]))
}
