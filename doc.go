/*
Package threadpoolutil provides a bounded worker pool for background task
execution, with typed result handles and time-based scheduling.

Worker Pool (pkg/pool):
  - pool: Fixed or elastic worker pool with a bounded FIFO queue
  - Outcome: Blocking, memoized result handle per submission
  - MetricsPool: Prometheus-instrumented wrapper

Scheduling (pkg/schedule):
  - schedule: One-time, interval and cron dispatch onto a pool

Shared (pkg/common):
  - boxed: Type-erased single-value container with typed extraction
  - errors: Sentinel and structured errors used across the library
  - validation: Input validation helpers

Example usage:

	import (
		"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
		"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/pool"
	)

	p, _ := pool.New(pool.Config{
		Mode:          pool.Fixed,
		QueueCapacity: 100,
		WorkerCeiling: 5,
	})
	_ = p.Start(5)

	out := p.Submit(pool.TaskFunc(func() *boxed.Box {
		return boxed.Of(compute())
	}))
	value, _ := boxed.Cast[int](out.Get())

	_ = p.Stop(true)
*/
package threadpoolutil
