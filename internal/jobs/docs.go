// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Add("order stats", jobs.NewOrderStatsJob(counter, "*/30 * * * * *", prometheus.DefaultRegisterer, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OrderStatsJob refreshes the ordering_orders_by_status gauge from storage.
// A failed refresh is logged and the gauge keeps its previous values.
package jobs
