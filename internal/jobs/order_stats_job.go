package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule refreshes the gauge every 30 seconds.
const DefaultStatsSchedule = "*/30 * * * * *"

// StatusCounter returns the number of stored orders per status.
type StatusCounter func(ctx context.Context) (map[order.Status]int64, error)

// OrderStatsJob periodically publishes order counts per status as the
// ordering_orders_by_status gauge.
type OrderStatsJob struct {
	count    StatusCounter
	schedule string
	timeout  time.Duration
	gauge    *prometheus.GaugeVec
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob registers the gauge with reg. schedule is a six-field
// cron expression (seconds first); empty means DefaultStatsSchedule.
func NewOrderStatsJob(
	count StatusCounter,
	schedule string,
	reg prometheus.Registerer,
	logger *slog.Logger,
) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ordering",
		Name:      "orders_by_status",
		Help:      "Number of stored orders per lifecycle status.",
	}, []string{"status"})
	reg.MustRegister(gauge)

	return &OrderStatsJob{
		count:    count,
		schedule: schedule,
		timeout:  10 * time.Second,
		gauge:    gauge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start schedules the refresh and runs it once right away.
func (j *OrderStatsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Refresh); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.schedule)

	go j.Refresh()
	return nil
}

// Refresh queries the counts and updates the gauge. A failed query keeps
// the previous values.
func (j *OrderStatsJob) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	counts, err := j.count(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		return
	}

	for _, status := range order.AllStatuses() {
		j.gauge.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
}

// Stop waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
