// Package metrics provides Prometheus instrumentation for pool components.
//
// # Overview
//
// The metrics package provides instrumentation for:
//   - Task submission (accepted and rejected submissions)
//   - Task execution (completions, failures, duration histograms)
//   - Pool state (live workers, busy workers, queue depth)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructor:
//
//	mp, err := pool.NewWithMetrics(cfg, "task_pool", metrics.DefaultConfig())
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	mp, err := pool.NewWithMetrics(cfg, "task_pool", config)
//
// # Available Metrics
//
// All metrics carry a pool_name label:
//
//	threadpool_pool_tasks_submitted_total
//	threadpool_pool_tasks_rejected_total
//	threadpool_pool_tasks_completed_total
//	threadpool_pool_tasks_failed_total
//	threadpool_pool_task_duration_seconds
//	threadpool_pool_workers
//	threadpool_pool_busy_workers
//	threadpool_pool_queue_depth
package metrics
