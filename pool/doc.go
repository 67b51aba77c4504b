// Package pool provides a general-purpose worker pool with tracked
// submissions, a parallel-for engine layered on top of it, and
// quiescence-based synchronization.
//
// The pool runs a fixed set of worker goroutines plus one dispatcher
// goroutine. Submitted tasks enter a FIFO queue; the dispatcher scans
// the workers in ascending index order and hands the queue head to
// each idle worker. This keeps the workers' hot path branch-free and
// centralizes queue contention in one goroutine, at the cost of a
// small handoff delay.
//
// # Basic Usage
//
// Create a pool, submit work, wait for quiescence:
//
//	p := pool.New(4)
//	defer p.Close()
//
//	for i := 0; i < 100; i++ {
//	    p.Submit(func() {
//	        // do work
//	    })
//	}
//	p.Wait()
//
// # Tracked Submissions
//
// Go, GoErr and Track return a Future that becomes ready once the task
// has run:
//
//	f := pool.Go(p, func() int { return compute() })
//	v, err := f.Wait()
//
// A task submitted through Submit is fire-and-forget: a panic in it is
// recovered by the worker, logged and swallowed. A panic in a tracked
// task is captured as a *PanicError and surfaces from Future.Get.
//
// # Parallel For
//
// ForN, ForRange, ForEach and ForEachValue decompose a range or a
// slice into one task per element, enqueue the batch atomically with
// respect to other submitters, and block until every iteration has
// completed:
//
//	p.ForN(len(frames), func(i int) { render(frames[i]) })
//
// # Pause and Resume
//
// Stop pauses dispatching without rejecting submissions; Work resumes
// it. Wait returns immediately while the pool is paused. Tasks already
// handed to workers are never preempted.
//
// # Ordering Guarantees
//
// Tasks leave the queue in FIFO order, so a single submitter observes
// its own submissions dispatched in submission order. Across
// submitters the order is the lock-acquisition order on the queue.
// Completion order is not guaranteed; synchronize through a Future
// when one task must observe another's result.
//
// # Caveats
//
//   - Wait must not be called from within a submitted task; it would
//     block forever waiting on its own worker.
//   - The parallel-for body must not schedule further parallel-for
//     work on the same pool.
//   - There is no cancellation of a task after submission; Close
//     drains assigned tasks before joining the workers.
package pool
