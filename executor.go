package asyncrt

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Executor owns the ready queue and the reactor, and drives spawned
// futures to completion. It is grounded directly on Executor in the
// original C executor.c: create/spawn/run/destroy, a FIFO queue, and a
// Mio-equivalent reactor, with Go idioms (errors instead of exit(1) where
// the spec allows it, a pluggable Logger and optional prometheus metrics)
// layered on top.
//
// Executor is not safe for concurrent use. Spawn, Run, and Destroy must all
// be called from the same goroutine; futures and combinators may only call
// Waker.Wake, never Progress/Poll/Destroy, from inside a wake callback
// (spec.md §5 re-entrancy rule).
type Executor struct {
	queue   *readyQueue
	reactor *Reactor
	config  Config
	logger  Logger
	metrics *Metrics
}

// NewExecutor allocates the ready queue of the configured capacity and
// instantiates the reactor. A nil logger falls back to the package default;
// metrics are registered against prometheus.DefaultRegisterer when
// Config.MetricsEnabled is set.
func NewExecutor(cfg Config, logger Logger) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = defaultLogger()
	}

	ex := &Executor{
		queue:  newReadyQueue(cfg.QueueCapacity),
		config: cfg,
		logger: logger,
	}

	reactor, err := newReactor(ex, cfg.ReactorBatch, logger)
	if err != nil {
		return nil, err
	}
	ex.reactor = reactor

	if cfg.MetricsEnabled {
		metrics, err := newMetrics(prometheus.DefaultRegisterer, "asyncrt")
		if err != nil {
			_ = reactor.Destroy()
			return nil, err
		}
		ex.metrics = metrics
	}

	return ex, nil
}

// Spawn marks future active and places it on the ready queue. Spawning a
// future that is already active is a caller error per spec.md §4.2 and is
// not itself detected; doing so risks the "appears at most once" queue
// invariant, which is why Waker routes through the same queued-flag guard
// (see waker.go).
//
// If the queue is full, Spawn's behavior depends on Config.StrictQueue: by
// default (false) the future is silently dropped, matching the reference
// implementation's push; with StrictQueue enabled, Spawn returns
// ErrQueueFull instead.
func (e *Executor) Spawn(fut *Future) error {
	fut.IsActive = true
	fut.queued = true

	id := uuid.New()
	if !e.queue.push(fut) {
		fut.queued = false
		fut.IsActive = false
		if e.metrics != nil {
			e.metrics.QueueDrops.Inc()
		}
		e.logger.Warn("asyncrt: dropped future, ready queue full", "future_id", id)
		if e.config.StrictQueue {
			return ErrQueueFull
		}
		return nil
	}

	e.logger.Debug("asyncrt: spawned future", "future_id", id)
	if e.metrics != nil {
		e.metrics.QueueDepth.Set(float64(e.queue.len()))
	}
	return nil
}

// Run drives the executor to quiescence: it alternates an inner drain of
// the ready queue (progressing every future currently on it) with an outer
// Reactor.Poll call that blocks until external readiness re-populates the
// queue. Run returns once the queue is empty and the reactor has no
// registrations left to wait on (spec.md §4.2).
//
// A future that returns Pending without having registered a wake source is
// silently abandoned once Run returns — the runtime has no mechanism to
// detect this; it is a contract violation by the future, not the executor.
func (e *Executor) Run() {
	for !e.queue.empty() {
		for !e.queue.empty() {
			fut, _ := e.queue.pop()
			fut.queued = false
			waker := Waker{executor: e, future: fut}

			state := fut.Progress(fut, e.reactor, waker)

			e.metrics.recordOutcome(state)
			if state == Completed || state == Failure {
				fut.IsActive = false
			}
		}

		if e.metrics != nil {
			e.metrics.QueueDepth.Set(0)
		}

		start := time.Now()
		e.reactor.Poll()
		if e.metrics != nil {
			e.metrics.PollDuration.Observe(time.Since(start).Seconds())
		}
	}
}

// Destroy tears down the reactor and the ready queue. Its precondition is
// that the queue is empty — ordinarily true once Run has returned — and it
// returns ErrExecutorDestroyNotEmpty rather than silently discarding
// still-active futures if that precondition is violated. Futures
// themselves are never freed by the runtime: their storage is always
// caller-owned.
func (e *Executor) Destroy() error {
	if !e.queue.empty() {
		return ErrExecutorDestroyNotEmpty
	}
	return e.reactor.Destroy()
}

// Reactor returns the executor's reactor, for leaf futures that need to
// register a descriptor directly.
func (e *Executor) Reactor() *Reactor { return e.reactor }
