package asyncrt

// Waker names a future and the executor that owns its ready queue. It is a
// cheap, copyable value with no ownership semantics, grounded directly on
// the original C `Waker{executor, future}` pair: invoking Wake schedules the
// named future on the named executor without the waker itself retaining
// anything beyond those two references.
type Waker struct {
	executor *Executor
	future   *Future
}

// Wake enqueues the waker's future on its executor's ready queue. It is safe
// to call Wake multiple times for the same suspension; the queue's "appears
// at most once" invariant (spec ready-queue invariant) is enforced here via
// the future's queued flag, not by the queue itself.
//
// Wake must only be called from the executor's own goroutine: during a
// future's Progress call, or from inside Reactor.Poll while dispatching a
// kernel readiness event. It must never itself call Progress, Poll, or
// Destroy (re-entrancy rule, spec.md §5).
func (w Waker) Wake() {
	if w.future == nil || w.executor == nil {
		return
	}
	if w.future.queued {
		return
	}
	w.future.queued = true
	if !w.executor.queue.push(w.future) {
		w.future.queued = false
		if w.executor.metrics != nil {
			w.executor.metrics.QueueDrops.Inc()
		}
	}
}

// Future returns the future this waker names. Leaf futures that need to
// stash a waker across multiple suspension points (e.g. a timer that
// re-arms every tick) use this to confirm identity, not to bypass Wake.
func (w Waker) Future() *Future { return w.future }
