package pool

import (
	"sync"
)

// Latch is a counting wait/signal primitive. Wait blocks until the count is
// positive, then decrements it; Signal increments the count and wakes one
// waiter. Signaling before anyone waits is safe: the count simply grows and
// the next Wait returns immediately.
//
// A Latch bridges exactly one producer (the worker that finishes a task)
// and the consumers blocked in Outcome.Get.
type Latch struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

// NewLatch creates a Latch with the given initial count.
func NewLatch(count int) *Latch {
	l := &Latch{count: count}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Wait blocks the caller until the count is positive, then decrements it.
func (l *Latch) Wait() {
	l.mu.Lock()
	for l.count <= 0 {
		l.cond.Wait()
	}
	l.count--
	l.mu.Unlock()
}

// Signal increments the count and wakes one waiter, if any.
func (l *Latch) Signal() {
	l.mu.Lock()
	l.count++
	l.mu.Unlock()
	l.cond.Signal()
}
