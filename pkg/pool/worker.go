package pool

import (
	"time"
)

// worker owns one goroutine of the pool. Its identity comes from the
// pool's monotonic counter; it keeps no other private state.
type worker struct {
	id      int
	pool    *Pool
	extra   bool // spawned by Elastic growth; observes the idle timeout
	retired bool
}

// run is the dispatch loop: block until work is available or the pool is
// stopping, execute one task outside any lock, repeat. Extra workers also
// wake on an idle timer and retire when the pool is above its floor.
func (w *worker) run() {
	p := w.pool

	if p.cfg.OnWorkerStart != nil {
		p.cfg.OnWorkerStart(w.id)
	}
	defer func() {
		if !w.retired {
			p.live.Add(-1)
		}
		if p.cfg.OnWorkerStop != nil {
			p.cfg.OnWorkerStop(w.id)
		}
		p.workerWg.Done()
	}()

	for {
		// A closed haltCh outranks queued work.
		select {
		case <-p.haltCh:
			return
		default:
		}

		if w.extra {
			if !w.waitElastic() {
				return
			}
			continue
		}

		select {
		case sub, ok := <-p.queue:
			if !ok {
				return
			}
			w.execute(sub)
		case <-p.haltCh:
			return
		}
	}
}

// waitElastic is one wait round for an extra worker. Returns false when the
// worker should exit, either because the pool is stopping or because it
// retired after sitting idle past IdleTimeout.
func (w *worker) waitElastic() bool {
	p := w.pool

	idle := time.NewTimer(p.cfg.IdleTimeout)
	defer idle.Stop()

	select {
	case sub, ok := <-p.queue:
		if !ok {
			return false
		}
		w.execute(sub)
		return true
	case <-p.haltCh:
		return false
	case <-idle.C:
		if p.tryRetire() {
			w.retired = true
			return false
		}
		return true
	}
}

// execute runs one task and resolves its Outcome. runTask guarantees the
// failure boundary: no panic escapes into the loop.
func (w *worker) execute(sub *submission) {
	p := w.pool

	p.busy.Add(1)
	sub.outcome.complete(runTask(sub.task))
	p.completed.Add(1)
	p.busy.Add(-1)
}
