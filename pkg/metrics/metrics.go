// Package metrics provides Prometheus instrumentation for pool components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for pool components.
type Registry struct {
	// Submission metrics
	TasksSubmitted *prometheus.CounterVec
	TasksRejected  *prometheus.CounterVec

	// Execution metrics
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec

	// Pool state metrics
	PoolWorkers    *prometheus.GaugeVec
	PoolBusy       *prometheus.GaugeVec
	PoolQueueDepth *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by pool components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks accepted into the queue",
			},
			[]string{"pool_name"},
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "tasks_rejected_total",
				Help:      "Total number of submissions rejected by backpressure or shutdown",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that produced a value",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that produced an error value",
			},
			[]string{"pool_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		PoolWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Number of live worker goroutines",
			},
			[]string{"pool_name"},
		),

		PoolBusy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "busy_workers",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"pool_name"},
		),

		PoolQueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "threadpool",
				Subsystem: "pool",
				Name:      "queue_depth",
				Help:      "Number of queued tasks waiting for a worker",
			},
			[]string{"pool_name"},
		),
	}
}
