package pool

import (
	"sync"

	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/boxed"
)

// Outcome is the handle returned by Submit. It yields the task's boxed
// result once a worker has produced it.
//
// An Outcome is written at most once, by the single worker that ran its
// task; the latch signal is the synchronization edge between that write and
// every reader. After the first successful Get the value is memoized, so
// later calls return the same Box without blocking.
type Outcome struct {
	task  Task
	latch *Latch

	// pending carries the worker's result to the first Get. It is written
	// strictly before the latch signal and read strictly after the wait,
	// which orders the two through the latch's mutex.
	pending *boxed.Box

	mu     sync.Mutex
	valid  bool
	reason error
	done   bool
	box    *boxed.Box
}

// newOutcome creates a valid Outcome linked to a fresh latch for the given task.
func newOutcome(task Task) *Outcome {
	return &Outcome{
		task:  task,
		latch: NewLatch(0),
		valid: true,
	}
}

// rejectedOutcome creates an Outcome that was invalid from the start.
// Get returns the empty sentinel immediately and never blocks.
func rejectedOutcome(reason error) *Outcome {
	return &Outcome{
		latch:  NewLatch(0),
		reason: reason,
		box:    boxed.None(),
		done:   true,
	}
}

// Valid reports whether the submission was accepted. Callers should check
// it before blocking in Get; an invalid Outcome never produces a value.
func (o *Outcome) Valid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.valid
}

// Err returns why the Outcome is invalid (ErrRejected, ErrNotRunning,
// ErrCanceled or a validation error), or nil for a valid Outcome.
func (o *Outcome) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reason
}

// Task returns the task this Outcome was linked to at submission, or nil
// for an Outcome that never reached the queue.
func (o *Outcome) Task() Task {
	return o.task
}

// Get blocks until the task has produced a value, then returns it. The
// value is cached: second and later calls return the same Box without
// blocking. For an invalid Outcome, Get returns an empty Box immediately.
func (o *Outcome) Get() *boxed.Box {
	o.mu.Lock()
	if o.done {
		b := o.box
		o.mu.Unlock()
		return b
	}
	o.mu.Unlock()

	o.latch.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.done {
		o.box = o.pending
		if o.box == nil {
			o.box = boxed.None()
		}
		o.done = true
	}
	// Re-arm so every other goroutine blocked in Wait also passes. The
	// count stays positive afterwards, which the done fast path makes
	// harmless.
	o.latch.Signal()
	return o.box
}

// complete stores the worker's result and releases the waiters.
// Called exactly once per executed task.
func (o *Outcome) complete(result *boxed.Box) {
	o.pending = result
	o.latch.Signal()
}

// reject invalidates the Outcome and releases any waiter. Used for
// submissions refused by backpressure and for queued tasks dropped by a
// non-graceful Stop.
func (o *Outcome) reject(reason error) {
	o.mu.Lock()
	if o.done {
		o.mu.Unlock()
		return
	}
	o.valid = false
	o.reason = reason
	o.box = boxed.None()
	o.done = true
	o.mu.Unlock()
	o.latch.Signal()
}
