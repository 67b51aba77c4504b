// Package cyclic runs a callable repeatedly at or after a fixed
// minimum period on its own dedicated goroutine.
//
// The scheduler does not catch up: when an invocation runs longer than
// one period, the missed ticks are skipped, not queued, so any two
// consecutive invocations are always separated by at least the period.
//
//	r := cyclic.Start(cyclic.Hz(20), poll)
//	defer r.Stop()
package cyclic

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// spinThreshold is how close to the next tick the runner switches from
// sleeping to busy-spinning, keeping tick jitter small without pinning a
// core for long periods.
const spinThreshold = 100 * time.Microsecond

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for the runner's debug messages.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner owns the goroutine invoking the callable. It is scope-bound:
// Stop signals the loop and joins it, letting a running invocation
// finish first.
type Runner struct {
	logger   *slog.Logger
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start spawns a goroutine that invokes fn at most once per period,
// measured on the monotonic clock. The first invocation happens
// immediately. A period of zero (or less) runs fn in a tight loop
// bounded only by the cost of fn.
func Start(period time.Duration, fn func(), opts ...Option) *Runner {
	r := &Runner{
		logger: slog.Default(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	if period < 0 {
		r.logger.Debug("negative period treated as zero", "period", period)
		period = 0
	}

	go r.loop(period, fn)

	r.logger.Debug("cyclic runner started", "period", period)
	return r
}

// StartCtx behaves like Start and additionally stops the runner when
// ctx is cancelled. Stop may still be called to join the loop.
func StartCtx(ctx context.Context, period time.Duration, fn func(), opts ...Option) *Runner {
	r := Start(period, fn, opts...)

	go func() {
		select {
		case <-ctx.Done():
			r.signal()
		case <-r.done:
		}
	}()

	return r
}

// Stop signals the loop to exit and waits for it. The callable is
// never interrupted mid-invocation; the loop exits at the next
// iteration. Stop is idempotent.
func (r *Runner) Stop() {
	r.signal()
	<-r.done
	r.logger.Debug("cyclic runner stopped")
}

// Done returns a channel closed once the loop has exited.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) signal() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Runner) loop(period time.Duration, fn func()) {
	defer close(r.done)

	if period == 0 {
		for {
			select {
			case <-r.stop:
				return
			default:
				fn()
			}
		}
	}

	// last starts at the zero time so the first tick fires immediately
	var last time.Time

	for {
		select {
		case <-r.stop:
			return
		default:
		}

		now := time.Now()
		elapsed := now.Sub(last)

		if elapsed >= period {
			last = now
			fn()
			continue
		}

		// Not due yet. Sleep most of the remaining span, then spin the
		// final stretch so the tick lands close to the period boundary.
		if wait := period - elapsed; wait > spinThreshold {
			timer := time.NewTimer(wait - spinThreshold)
			select {
			case <-r.stop:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
}
