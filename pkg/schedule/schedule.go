package schedule

import (
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	tperrors "github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/errors"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/common/validation"
	"github.com/CodeSingerAlex/ThreadPoolUtil/pkg/pool"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultTickInterval = 50 * time.Millisecond
	DefaultMaxEntries   = 10000
)

const maxEntryIDLength = 255

// Entry describes one scheduled task.
type Entry struct {
	ID       string
	RunAt    time.Time
	Interval time.Duration // zero for one-time and cron entries
	Created  time.Time
}

// Config holds scheduler configuration. Pool is required; the scheduler
// submits due tasks to it and never owns its lifecycle.
type Config struct {
	// Pool receives due tasks. The caller starts and stops it.
	Pool *pool.Pool

	// Location is the time zone used to evaluate cron expressions.
	// Defaults to time.Local.
	Location *time.Location

	// TickInterval is how often the scheduler checks for due entries.
	TickInterval time.Duration

	// MaxEntries bounds the number of scheduled entries.
	MaxEntries int

	// OnOutcome, when set, is called with each dispatched entry's id and
	// the Outcome the pool returned for it. Called from its own goroutine
	// so a blocking Get does not stall the tick loop.
	OnOutcome func(id string, out *pool.Outcome)
}

type entry struct {
	id           string
	task         pool.Task
	runAt        time.Time
	interval     time.Duration
	cronSchedule cron.Schedule
	created      time.Time
}

// Scheduler dispatches tasks to a worker pool at scheduled times. One-time,
// fixed-interval and cron entries share a single tick loop.
type Scheduler struct {
	pool         *pool.Pool
	location     *time.Location
	tickInterval time.Duration
	maxEntries   int
	onOutcome    func(id string, out *pool.Outcome)
	cronParser   cron.Parser

	mu      sync.RWMutex
	entries map[string]*entry
	ticker  *time.Ticker
	done    chan struct{}
	running bool

	dispatchWg sync.WaitGroup
}

// New creates a scheduler bound to the given pool.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Pool == nil {
		return nil, tperrors.NewValidationError("schedule", "pool", nil, "cannot be nil").
			WithHint("provide a started pool")
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}
	tickInterval := cfg.TickInterval
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Scheduler{
		pool:         cfg.Pool,
		location:     location,
		tickInterval: tickInterval,
		maxEntries:   maxEntries,
		onOutcome:    cfg.OnOutcome,
		cronParser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		entries:      make(map[string]*entry),
		done:         make(chan struct{}),
	}, nil
}

func validateEntry(id string, task pool.Task) error {
	if err := validation.ValidateNotEmpty("schedule", "id", id); err != nil {
		return err
	}
	if len(id) > maxEntryIDLength {
		return tperrors.NewValidationError("schedule", "id", id, "too long").
			WithHint("ids are limited to 255 characters")
	}
	if task == nil {
		return tperrors.NewValidationError("schedule", "task", nil, "cannot be nil")
	}
	return nil
}

// add inserts the entry under the scheduler lock, enforcing id uniqueness
// and the entry bound.
func (s *Scheduler) add(e *entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.id]; exists {
		return tperrors.NewValidationError("schedule", "id", e.id, "already scheduled").
			WithHint("cancel the existing entry first")
	}
	if len(s.entries) >= s.maxEntries {
		return tperrors.NewValidationError("schedule", "entries", len(s.entries), "entry limit reached")
	}

	s.entries[e.id] = e
	return nil
}

// Schedule runs the task once at the given time.
func (s *Scheduler) Schedule(id string, task pool.Task, runAt time.Time) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if runAt.IsZero() {
		return tperrors.NewValidationError("schedule", "runAt", runAt, "cannot be zero")
	}
	return s.add(&entry{id: id, task: task, runAt: runAt, created: time.Now()})
}

// ScheduleAfter runs the task once after the given delay.
func (s *Scheduler) ScheduleAfter(id string, task pool.Task, delay time.Duration) error {
	return s.Schedule(id, task, time.Now().Add(delay))
}

// ScheduleRepeating runs the task at a fixed interval, starting now.
func (s *Scheduler) ScheduleRepeating(id string, task pool.Task, interval time.Duration) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if interval <= 0 {
		return tperrors.NewValidationError("schedule", "interval", interval, "must be positive")
	}
	return s.add(&entry{
		id:       id,
		task:     task,
		runAt:    time.Now(),
		interval: interval,
		created:  time.Now(),
	})
}

// ScheduleCron runs the task on a cron schedule. Expressions use the
// six-field form with a leading seconds field.
func (s *Scheduler) ScheduleCron(id string, cronExpr string, task pool.Task) error {
	if err := validateEntry(id, task); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("schedule", "cronExpr", cronExpr); err != nil {
		return err
	}

	cronSchedule, err := s.cronParser.Parse(cronExpr)
	if err != nil {
		return tperrors.NewOperationError("schedule", "parse-cron", err).
			WithContext("expression " + cronExpr)
	}

	return s.add(&entry{
		id:           id,
		task:         task,
		runAt:        cronSchedule.Next(time.Now().In(s.location)),
		cronSchedule: cronSchedule,
		created:      time.Now(),
	})
}

// Cancel removes the entry with the given id. It reports whether an entry
// was removed. A task already dispatched to the pool is not recalled.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; exists {
		delete(s.entries, id)
		return true
	}
	return false
}

// CancelAll removes every scheduled entry.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// List returns the scheduled entries ordered by next run time.
func (s *Scheduler) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, Entry{
			ID:       e.id,
			RunAt:    e.runAt,
			Interval: e.interval,
			Created:  e.created,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RunAt.Before(entries[j].RunAt)
	})
	return entries
}

// Start launches the tick loop. Entries may be added before or after Start.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return tperrors.ErrAlreadyStarted
	}
	s.running = true
	s.done = make(chan struct{})
	s.ticker = time.NewTicker(s.tickInterval)

	go s.run(s.done, s.ticker)
	return nil
}

// Stop halts the tick loop. The returned channel closes once the loop and
// any in-flight outcome callbacks have finished. Stopping an idle scheduler
// is a no-op. The pool is left running.
func (s *Scheduler) Stop() <-chan struct{} {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.done)
		s.ticker.Stop()
	}
	s.mu.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.dispatchWg.Wait()
	}()
	return stopped
}

func (s *Scheduler) run(done <-chan struct{}, ticker *time.Ticker) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.dispatchDue()
		}
	}
}

// dispatchDue submits every due entry to the pool and reschedules the
// repeating ones. Submission happens outside the lock.
func (s *Scheduler) dispatchDue() {
	now := time.Now()

	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}

	due := make([]*entry, 0, len(s.entries))
	for id, e := range s.entries {
		if e.runAt.After(now) {
			continue
		}
		due = append(due, e)

		switch {
		case e.interval > 0:
			e.runAt = now.Add(e.interval)
		case e.cronSchedule != nil:
			e.runAt = e.cronSchedule.Next(now.In(s.location))
		default:
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		out := s.pool.Submit(e.task)
		if s.onOutcome == nil {
			continue
		}
		s.dispatchWg.Add(1)
		go func(id string, out *pool.Outcome) {
			defer s.dispatchWg.Done()
			s.onOutcome(id, out)
		}(e.id, out)
	}
}
