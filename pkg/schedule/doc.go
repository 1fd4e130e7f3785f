// Package schedule provides time-based task dispatch on top of a worker
// pool. One-time, fixed-interval and cron entries share a single tick loop
// that submits due tasks to the pool; results come back through the pool's
// Outcome handles.
//
// # Basic Usage
//
//	p, _ := pool.New(pool.Config{Mode: pool.Fixed, QueueCapacity: 64, WorkerCeiling: 4})
//	_ = p.Start(4)
//
//	s, _ := schedule.New(schedule.Config{Pool: p})
//	_ = s.Start()
//
//	_ = s.ScheduleAfter("cleanup", cleanupTask, time.Minute)
//	_ = s.ScheduleRepeating("heartbeat", heartbeatTask, 30*time.Second)
//	_ = s.ScheduleCron("nightly", "0 0 2 * * *", reportTask)
//
//	<-s.Stop()
//	_ = p.Stop(true)
//
// # Entries
//
// Each entry has a unique id. Scheduling a second entry under an existing
// id fails; Cancel removes an entry by id. List returns the pending entries
// ordered by next run time. One-time entries are removed once dispatched;
// interval and cron entries are rescheduled after every dispatch.
//
// Cron expressions use the six-field form with a leading seconds field,
// evaluated in Config.Location (default time.Local).
//
// # Results
//
// The scheduler submits tasks and moves on; it never blocks on execution.
// To observe results, set Config.OnOutcome: it receives each dispatched
// entry's id and the Outcome the pool returned, on its own goroutine, so
// callbacks may block on Outcome.Get. A full pool rejects submissions the
// same way it does for direct callers, and the rejection is visible on the
// delivered Outcome.
//
// # Lifecycle
//
// The scheduler never owns the pool: the caller starts the pool before
// Start and stops it after Stop. Stop halts the tick loop and its returned
// channel closes once in-flight outcome callbacks have finished. A stopped
// scheduler can be started again.
package schedule
