/*
Package pool provides a bounded, in-process worker pool with future-style
result handoff.

A pool owns a bounded FIFO queue of tasks and a fixed or elastic set of
worker goroutines consuming it. Submitting a task returns an Outcome, a
handle whose Get blocks until the task's result is available. Backpressure
is explicit: when the queue stays full past a bounded wait, the submission
is rejected instead of enqueued past capacity.

Basic usage:

	p, err := pool.New(pool.Config{
		Mode:          pool.Fixed,
		QueueCapacity: 64,
		WorkerCeiling: 4,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := p.Start(4); err != nil {
		log.Fatal(err)
	}
	defer p.Stop(true)

	out := p.Submit(pool.TaskFunc(func() *boxed.Box {
		return boxed.Of(21 * 2)
	}))
	if !out.Valid() {
		log.Printf("rejected: %v", out.Err())
		return
	}

	answer, err := boxed.Cast[int](out.Get())

Tasks:

Tasks implement a single-method interface:

	type Task interface {
		Run() *boxed.Box
	}

The TaskFunc type adapts ordinary functions. Run executes outside any pool
lock and is invoked at most once. A failure inside Run should be returned
as an error value in the Box; a panic is recovered by the worker and
converted to an error-tagged Box, so a misbehaving task can never take a
worker down.

Outcomes:

Every accepted submission is linked to exactly one Outcome. The worker that
executes the task writes the result once and signals the Outcome's latch;
Get waits on that latch, then memoizes the value, so repeated and
concurrent Gets all see the identical Box. An Outcome from a refused
submission is invalid: Valid reports false, Err carries the reason, and Get
returns an empty Box without blocking.

Modes:

A Fixed pool runs a constant number of workers for its lifetime. An
Elastic pool grows by one worker whenever the queue is full, every live
worker is busy and the count is below WorkerCeiling; workers added this way
retire after IdleTimeout without work once the pool is back above the
Start count.

Ordering:

Tasks are picked up in FIFO submission order. Which of several idle workers
starts a given task first is not guaranteed, only the dequeue order is.

Shutdown:

Stop(true) drains the queue before the workers exit; every accepted Outcome
resolves. Stop(false) drops queued-but-unstarted tasks and resolves their
Outcomes as canceled, so no Get can deadlock. Both forms release blocked
submitters with an invalid Outcome and join every worker goroutine before
returning.

Metrics:

The core pool carries no instrumentation. NewWithMetrics wraps a pool with
Prometheus counters, gauges and an execution-duration histogram published
under a pool name label.
*/
package pool
