package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/ctxutil"
	tperrors "github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/errors"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/validation"
)

// Mode selects the pool's worker-count policy.
type Mode int

const (
	// Fixed keeps a constant number of workers for the pool's lifetime.
	Fixed Mode = iota

	// Elastic lets the pool grow toward WorkerCeiling when the queue is
	// full and every worker is busy, and shrink back to the Start count
	// when the extra workers sit idle past IdleTimeout.
	Elastic
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Elastic:
		return "elastic"
	default:
		return "unknown"
	}
}

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultSubmitTimeout = time.Second
	DefaultIdleTimeout   = 60 * time.Second
)

// Config holds configuration options for creating a pool. The configuration
// is fixed at New; it cannot be changed after Start.
type Config struct {
	// Mode is the worker-count policy, Fixed or Elastic.
	Mode Mode

	// QueueCapacity is the maximum number of queued tasks. Must be
	// positive; the queue never holds more than this many submissions.
	QueueCapacity int

	// WorkerCeiling is the maximum number of live workers. Must be
	// positive. Start clamps its argument to this value, and Elastic
	// growth never exceeds it.
	WorkerCeiling int

	// SubmitTimeout bounds how long Submit waits for queue space before
	// rejecting. Zero means DefaultSubmitTimeout; a negative value makes
	// Submit fail immediately when the queue is full.
	SubmitTimeout time.Duration

	// IdleTimeout is how long an Elastic extra worker waits without work
	// before retiring. Zero means DefaultIdleTimeout. Ignored in Fixed mode.
	IdleTimeout time.Duration

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)
}

// submission pairs a queued task with the Outcome its submitter holds.
type submission struct {
	task    Task
	outcome *Outcome
}

// Pool is a bounded, in-process worker pool. Tasks are executed in FIFO
// submission order by a fixed or elastic set of workers; each accepted
// submission is linked to an Outcome through which the caller retrieves
// the result.
type Pool struct {
	cfg Config

	queue  chan *submission
	stopCh chan struct{} // closed by Stop; releases blocked submitters
	haltCh chan struct{} // closed by Stop(false); workers quit without draining

	mu      sync.Mutex
	started bool
	stopped bool
	floor   int // worker count Start was called with; Elastic shrink target

	running  atomic.Bool
	inflight sync.WaitGroup // submitters between admit and enqueue/reject
	workerWg sync.WaitGroup

	nextWorkerID atomic.Int64
	live         atomic.Int64
	busy         atomic.Int64

	submitted atomic.Int64
	completed atomic.Int64
	rejected  atomic.Int64
}

// New creates a pool with the given configuration. No workers are spawned
// until Start.
func New(cfg Config) (*Pool, error) {
	if err := validation.ValidatePositive("pool", "queueCapacity", cfg.QueueCapacity); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("pool", "workerCeiling", cfg.WorkerCeiling); err != nil {
		return nil, err
	}
	if cfg.Mode != Fixed && cfg.Mode != Elastic {
		return nil, tperrors.NewValidationError("pool", "mode", cfg.Mode, "unknown mode").
			WithHint("use Fixed or Elastic")
	}
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = DefaultSubmitTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	return &Pool{
		cfg:    cfg,
		queue:  make(chan *submission, cfg.QueueCapacity),
		stopCh: make(chan struct{}),
		haltCh: make(chan struct{}),
	}, nil
}

// Start spawns the initial workers and marks the pool running. The worker
// count is clamped to WorkerCeiling and becomes the Elastic shrink floor.
// Calling Start twice returns ErrAlreadyStarted.
func (p *Pool) Start(initialWorkers int) error {
	if err := validation.ValidatePositive("pool", "initialWorkers", initialWorkers); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return tperrors.ErrAlreadyStarted
	}
	if initialWorkers > p.cfg.WorkerCeiling {
		initialWorkers = p.cfg.WorkerCeiling
	}

	p.started = true
	p.floor = initialWorkers
	p.running.Store(true)

	for i := 0; i < initialWorkers; i++ {
		p.spawn(false)
	}
	return nil
}

// Submit offers a task to the pool and returns its Outcome. Submit never
// panics and never returns nil: when the pool is not running, or the queue
// stays full past SubmitTimeout, the returned Outcome is invalid and its
// Get yields the empty sentinel immediately. The task is never enqueued
// past capacity.
func (p *Pool) Submit(task Task) *Outcome {
	return p.submit(task, nil, p.cfg.SubmitTimeout)
}

// SubmitWithTimeout is Submit with a per-call bound on the backpressure wait.
func (p *Pool) SubmitWithTimeout(task Task, timeout time.Duration) *Outcome {
	return p.submit(task, nil, timeout)
}

// SubmitWithContext is Submit that also abandons the backpressure wait when
// ctx is canceled; the Outcome is then invalid with reason ErrCanceled.
func (p *Pool) SubmitWithContext(ctx context.Context, task Task) *Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctxutil.IsCanceled(ctx) {
		p.rejected.Add(1)
		return rejectedOutcome(tperrors.ErrCanceled)
	}
	return p.submit(task, ctx.Done(), p.cfg.SubmitTimeout)
}

func (p *Pool) submit(task Task, cancel <-chan struct{}, timeout time.Duration) *Outcome {
	if task == nil {
		return rejectedOutcome(tperrors.NewValidationError("pool", "task", nil, "cannot be nil"))
	}
	if !p.admit() {
		p.rejected.Add(1)
		return rejectedOutcome(tperrors.ErrNotRunning)
	}
	defer p.inflight.Done()

	out := newOutcome(task)
	sub := &submission{task: task, outcome: out}

	if p.cfg.Mode == Elastic {
		p.maybeGrow()
	}

	select {
	case p.queue <- sub:
		p.submitted.Add(1)
		return out
	default:
	}

	if timeout < 0 {
		p.rejected.Add(1)
		out.reject(tperrors.ErrRejected)
		return out
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p.queue <- sub:
		p.submitted.Add(1)
		return out
	case <-p.stopCh:
		p.rejected.Add(1)
		out.reject(tperrors.ErrNotRunning)
		return out
	case <-cancel:
		p.rejected.Add(1)
		out.reject(tperrors.ErrCanceled)
		return out
	case <-timer.C:
		// The queue stayed full for the whole bounded wait: reject rather
		// than enqueue past capacity.
		p.rejected.Add(1)
		out.reject(tperrors.ErrRejected)
		return out
	}
}

// admit registers a submitter, refusing once the pool is not running.
// Registration is what lets Stop wait out in-flight submissions before it
// closes the queue.
func (p *Pool) admit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.stopped {
		return false
	}
	p.inflight.Add(1)
	return true
}

// maybeGrow spawns one extra worker when the queue is at capacity, every
// live worker is busy, and the live count is below the ceiling.
func (p *Pool) maybeGrow() {
	if len(p.queue) < cap(p.queue) {
		return
	}
	if p.busy.Load() < p.live.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.stopped {
		return
	}
	if p.live.Load() >= int64(p.cfg.WorkerCeiling) {
		return
	}
	p.spawn(true)
}

// spawn creates and starts one worker. Caller must hold p.mu.
func (p *Pool) spawn(extra bool) {
	w := &worker{
		id:    int(p.nextWorkerID.Add(1)),
		pool:  p,
		extra: extra,
	}
	p.live.Add(1)
	p.workerWg.Add(1)
	go w.run()
}

// tryRetire decrements the live count for an idle extra worker, unless the
// pool is already at its floor. Returns true when the worker should exit.
// Serialized under p.mu so concurrent retirements cannot undershoot the
// floor.
func (p *Pool) tryRetire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false // shutdown owns the exit path now
	}
	if p.live.Load() <= int64(p.floor) {
		return false
	}
	p.live.Add(-1)
	return true
}

// Stop shuts the pool down and joins every worker goroutine before
// returning. With graceful=true the workers drain the queue first; with
// graceful=false pending tasks are dropped and their Outcomes resolved as
// canceled, so no Get can deadlock. Submitters blocked in Submit are
// released with an invalid Outcome either way. A second Stop returns
// ErrDoubleStop.
func (p *Pool) Stop(graceful bool) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return tperrors.ErrNotRunning
	}
	if p.stopped {
		p.mu.Unlock()
		return tperrors.ErrDoubleStop
	}
	p.stopped = true
	p.running.Store(false)
	close(p.stopCh)
	p.mu.Unlock()

	// admit refuses newcomers and stopCh releases the blocked ones, so
	// after this wait nothing can enqueue again.
	p.inflight.Wait()

	if !graceful {
		close(p.haltCh)
	}
	close(p.queue)

	p.workerWg.Wait()

	// Resolve whatever the workers left behind.
	for sub := range p.queue {
		sub.outcome.reject(tperrors.ErrCanceled)
	}
	return nil
}

// Running reports whether the pool accepts submissions.
func (p *Pool) Running() bool {
	return p.running.Load()
}

// QueueDepth returns the current number of queued tasks waiting for a worker.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

// QueueCapacity returns the configured queue bound.
func (p *Pool) QueueCapacity() int {
	return p.cfg.QueueCapacity
}

// LiveWorkers returns the number of live worker goroutines.
func (p *Pool) LiveWorkers() int {
	return int(p.live.Load())
}

// BusyWorkers returns the number of workers currently executing a task.
func (p *Pool) BusyWorkers() int {
	return int(p.busy.Load())
}

// Submitted returns the total number of tasks accepted into the queue.
func (p *Pool) Submitted() int64 {
	return p.submitted.Load()
}

// Completed returns the total number of tasks that have been executed.
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}

// Rejected returns the total number of refused submissions.
func (p *Pool) Rejected() int64 {
	return p.rejected.Load()
}
