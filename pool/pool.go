package pool

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// pollInterval is the sleep between quiescence polls in Wait and the
// dispatcher's idle backoff. Kept tiny so handoff latency stays small
// for micro-tasks.
const pollInterval = time.Microsecond

// maxThreads is the number of logical CPUs available to the process.
var maxThreads = runtime.NumCPU()

// Task is a unit of work queued for execution by a worker.
// Results, if any, are delivered through a Future captured in the closure.
type Task func()

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for the pool's debug and error messages.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pool executes submitted tasks on a fixed set of worker goroutines.
//
// A dedicated dispatcher goroutine moves tasks from the FIFO queue to
// idle workers, scanning workers in ascending index order. Submission
// never blocks on worker availability; the queue is bounded only by
// memory.
type Pool struct {
	// logger for structured logging
	logger *slog.Logger

	// queue holds tasks not yet handed to a worker
	queue taskQueue

	// mu protects the worker slice; the dispatcher holds the read lock
	// for the duration of a scan so Resize and Close cannot swap the
	// slice out from under an in-flight handoff
	mu      sync.RWMutex
	workers []*worker

	// alive controls the dispatcher loop
	alive atomic.Bool

	// active gates dispatcher assignment; toggled by Work and Stop
	active atomic.Bool

	// closed marks the pool as shut down
	closed atomic.Bool

	// dispatcherDone is closed when the dispatcher loop exits
	dispatcherDone chan struct{}

	stats statsCounters
}

// New creates a pool with the given number of workers and starts its
// dispatcher.
//
// A non-positive n is interpreted as an offset from the number of
// logical CPUs: New(-2) on an 8-CPU machine creates 6 workers. The
// effective count is clamped to a minimum of 1. Counts above
// NumCPU()-2 are honored but logged, since they tend to oversubscribe
// the machine once the dispatcher and the caller are accounted for.
func New(n int, opts ...Option) *Pool {
	p := &Pool{
		logger:         slog.Default(),
		dispatcherDone: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.alive.Store(true)
	p.active.Store(true)
	p.workers = p.spawnWorkers(computeWorkerCount(n, p.logger))

	go p.dispatch()

	p.logger.Debug("pool started", "workers", len(p.workers))
	return p
}

// Default creates a pool with one worker per logical CPU.
func Default(opts ...Option) *Pool {
	return New(maxThreads, opts...)
}

// computeWorkerCount resolves a requested worker count to an effective one.
// Non-positive requests are offsets from the CPU count; the result is
// never below 1.
func computeWorkerCount(n int, logger *slog.Logger) int {
	if n <= 0 {
		n += maxThreads
	}

	if n < 1 {
		logger.Debug("requested worker count not usable, using 1", "requested", n)
		n = 1
	}

	if n > maxThreads-2 {
		logger.Debug("worker count above recommended maximum",
			"count", n,
			"recommended", maxThreads-2)
	}

	return n
}

func (p *Pool) spawnWorkers(n int) []*worker {
	workers := make([]*worker, n)
	for i := range workers {
		workers[i] = newWorker(p, i)
	}
	return workers
}

// Submit enqueues a fire-and-forget task. The task's completion is not
// observable through the pool beyond Wait; use Go, GoErr or Track when
// a completion handle is needed.
//
// A nil fn is dropped with a debug message. Submission is accepted
// while the pool is paused; the task runs once Work is called.
func (p *Pool) Submit(fn func()) {
	if fn == nil {
		p.dropTask("nil task submitted, dropped")
		return
	}
	p.enqueue(fn)
}

// enqueue appends a ready-to-run task to the queue.
func (p *Pool) enqueue(t Task) {
	if p.closed.Load() {
		p.dropTask("task submitted after close, dropped")
		return
	}

	p.queue.push(t)
	p.stats.submitted.Add(1)
}

// enqueueBatch appends tasks under a single queue lock acquisition, so
// the batch is contiguous with respect to concurrent submitters.
func (p *Pool) enqueueBatch(tasks []Task) {
	if p.closed.Load() {
		p.dropTask("batch submitted after close, dropped")
		return
	}

	p.queue.pushBatch(tasks)
	p.stats.submitted.Add(int64(len(tasks)))
}

func (p *Pool) dropTask(msg string) {
	p.stats.dropped.Add(1)
	p.logger.Debug(msg)
}

// dispatch is the dispatcher loop: it repeatedly scans the workers in
// ascending index order and hands the queue head to each idle one.
// Lower-indexed workers therefore receive earlier tasks when several
// are idle at once; this is a deterministic tie-break, not a fairness
// guarantee.
func (p *Pool) dispatch() {
	defer close(p.dispatcherDone)

	for p.alive.Load() {
		if !p.active.Load() {
			// paused: spin until Work is called or the pool dies
			runtime.Gosched()
			continue
		}

		assigned := 0

		p.mu.RLock()
		for _, w := range p.workers {
			if w.busy() {
				continue
			}
			if p.queue.handoff(w) {
				assigned++
			}
		}
		p.mu.RUnlock()

		if assigned == 0 {
			// nothing to move; back off briefly before the next scan
			time.Sleep(pollInterval)
		} else {
			runtime.Gosched()
		}
	}
}

// Wait blocks until the queue is empty and every worker is idle.
//
// Wait returns immediately while the pool is paused, so a caller that
// forgot to resume does not deadlock. It must not be called from
// within a submitted task.
func (p *Pool) Wait() {
	if !p.active.Load() {
		return
	}

	for p.queue.len() > 0 {
		time.Sleep(pollInterval)
	}

	p.mu.RLock()
	workers := p.workers
	p.mu.RUnlock()

	for _, w := range workers {
		for w.busy() {
			time.Sleep(pollInterval)
		}
	}

	p.logger.Debug("pool quiescent")
}

// Work resumes dispatching after Stop.
func (p *Pool) Work() {
	p.active.Store(true)
}

// Stop pauses dispatching. Tasks already assigned to workers run to
// completion; queued tasks stay queued and submission remains open.
func (p *Pool) Stop() {
	p.active.Store(false)
}

// Size returns the current worker count.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.workers)
}

// Len returns the number of tasks waiting in the queue.
func (p *Pool) Len() int {
	return p.queue.len()
}

// Resize waits for the pool to quiesce, then tears down the worker set
// and rebuilds it with the new count, applying the same count rules as
// New.
func (p *Pool) Resize(n int) {
	p.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, w := range p.workers {
		w.halt()
	}
	p.workers = p.spawnWorkers(computeWorkerCount(n, p.logger))

	p.logger.Debug("pool resized", "workers", len(p.workers))
}

// Close waits for outstanding work, stops the dispatcher and joins all
// workers. Close is idempotent. Tasks submitted after Close are
// dropped. The wait is Wait, so on a paused pool it returns at once:
// tasks already assigned to workers still run, tasks still queued never
// do.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.Wait()

	p.alive.Store(false)
	<-p.dispatcherDone

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, w := range p.workers {
		w.halt()
	}
	p.workers = nil

	p.logger.Debug("all workers stopped")
}
