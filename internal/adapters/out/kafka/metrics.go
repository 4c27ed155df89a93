package kafka

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherMetrics counts event deliveries per event type. A nil
// *PublisherMetrics is valid and records nothing.
type PublisherMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewPublisherMetrics creates the collectors and registers them with reg.
func NewPublisherMetrics(reg prometheus.Registerer) *PublisherMetrics {
	m := &PublisherMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events delivered to the broker.",
		}, []string{"event_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Domain events that could not be delivered.",
		}, []string{"event_type"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ordering",
			Subsystem: "events",
			Name:      "publish_duration_seconds",
			Help:      "Time spent writing one event to the broker.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),
	}

	reg.MustRegister(m.published, m.failed, m.latency)
	return m
}

func (m *PublisherMetrics) recordPublished(eventType string, took time.Duration) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(eventType).Inc()
	m.latency.WithLabelValues(eventType).Observe(took.Seconds())
}

func (m *PublisherMetrics) recordFailed(eventType string) {
	if m == nil {
		return
	}
	m.failed.WithLabelValues(eventType).Inc()
}
