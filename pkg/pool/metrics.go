package pool

import (
	"context"
	"time"

	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/validation"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection. The core
// Pool carries no instrumentation of its own; wrapping is opt-in.
type MetricsPool struct {
	pool     *Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a pool with metrics published under the given
// name. The metrics configuration decides the Prometheus registry; a nil
// registry means the package default.
func NewWithMetrics(cfg Config, name string, metricsConfig metrics.Config) (*MetricsPool, error) {
	if err := validation.ValidateNotEmpty("pool", "name", name); err != nil {
		return nil, err
	}

	base, err := New(cfg)
	if err != nil {
		return nil, err
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		pool:     base,
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}
	mp.updateGauges()
	return mp, nil
}

// Start spawns the initial workers. See Pool.Start.
func (mp *MetricsPool) Start(initialWorkers int) error {
	err := mp.pool.Start(initialWorkers)
	mp.updateGauges()
	return err
}

// Stop shuts the pool down. See Pool.Stop.
func (mp *MetricsPool) Stop(graceful bool) error {
	err := mp.pool.Stop(graceful)
	mp.updateGauges()
	return err
}

// Submit offers a task to the pool, recording submission and execution
// metrics. See Pool.Submit.
func (mp *MetricsPool) Submit(task Task) *Outcome {
	out := mp.pool.Submit(mp.wrap(task))
	mp.observeSubmit(out)
	return out
}

// SubmitWithTimeout is Submit with a per-call backpressure bound.
func (mp *MetricsPool) SubmitWithTimeout(task Task, timeout time.Duration) *Outcome {
	out := mp.pool.SubmitWithTimeout(mp.wrap(task), timeout)
	mp.observeSubmit(out)
	return out
}

// SubmitWithContext is Submit that abandons the wait on context cancellation.
func (mp *MetricsPool) SubmitWithContext(ctx context.Context, task Task) *Outcome {
	out := mp.pool.SubmitWithContext(ctx, mp.wrap(task))
	mp.observeSubmit(out)
	return out
}

func (mp *MetricsPool) wrap(task Task) Task {
	if task == nil {
		return nil // let the pool reject it
	}
	return &metricsTask{original: task, mp: mp}
}

func (mp *MetricsPool) observeSubmit(out *Outcome) {
	if !mp.enabled {
		return
	}
	if out.Valid() {
		mp.registry.TasksSubmitted.WithLabelValues(mp.name).Inc()
	} else {
		mp.registry.TasksRejected.WithLabelValues(mp.name).Inc()
	}
	mp.updateGauges()
}

// updateGauges refreshes the current state metrics.
func (mp *MetricsPool) updateGauges() {
	if !mp.enabled {
		return
	}
	mp.registry.PoolWorkers.WithLabelValues(mp.name).Set(float64(mp.pool.LiveWorkers()))
	mp.registry.PoolBusy.WithLabelValues(mp.name).Set(float64(mp.pool.BusyWorkers()))
	mp.registry.PoolQueueDepth.WithLabelValues(mp.name).Set(float64(mp.pool.QueueDepth()))
}

// metricsTask wraps a Task to record execution metrics. A result box
// holding an error value counts as a failure; anything else counts as a
// completion.
type metricsTask struct {
	original Task
	mp       *MetricsPool
}

// Run executes the original task and records metrics.
func (mt *metricsTask) Run() *boxed.Box {
	start := time.Now()
	result := mt.original.Run()

	mp := mt.mp
	if mp.enabled {
		mp.registry.TaskDuration.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
		if _, err := boxed.Cast[error](result); err == nil {
			mp.registry.TasksFailed.WithLabelValues(mp.name).Inc()
		} else {
			mp.registry.TasksCompleted.WithLabelValues(mp.name).Inc()
		}
		mp.updateGauges()
	}
	return result
}

// Running reports whether the pool accepts submissions.
func (mp *MetricsPool) Running() bool { return mp.pool.Running() }

// QueueDepth returns the current number of queued tasks.
func (mp *MetricsPool) QueueDepth() int { return mp.pool.QueueDepth() }

// LiveWorkers returns the number of live worker goroutines.
func (mp *MetricsPool) LiveWorkers() int { return mp.pool.LiveWorkers() }

// BusyWorkers returns the number of workers currently executing a task.
func (mp *MetricsPool) BusyWorkers() int { return mp.pool.BusyWorkers() }

// Submitted returns the total number of accepted tasks.
func (mp *MetricsPool) Submitted() int64 { return mp.pool.Submitted() }

// Completed returns the total number of executed tasks.
func (mp *MetricsPool) Completed() int64 { return mp.pool.Completed() }

// Rejected returns the total number of refused submissions.
func (mp *MetricsPool) Rejected() int64 { return mp.pool.Rejected() }

// EnableMetrics enables metrics collection.
func (mp *MetricsPool) EnableMetrics(config metrics.Config) error {
	mp.enabled = config.Enabled
	if config.Registry != nil {
		mp.registry = metrics.NewRegistry(config.Registry)
	}
	if mp.enabled {
		mp.updateGauges()
	}
	return nil
}

// DisableMetrics disables metrics collection.
func (mp *MetricsPool) DisableMetrics() {
	mp.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mp *MetricsPool) MetricsEnabled() bool {
	return mp.enabled
}
