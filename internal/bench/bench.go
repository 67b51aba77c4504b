// Package bench drives the toolkit's pool, parallel-for and cyclic
// facilities through measured workloads and reduces the measurements
// to Report rows for rendering.
package bench

import (
	"context"
	"log/slog"
	"time"

	"github.com/aryankumar/hive/cyclic"
	"github.com/aryankumar/hive/internal/util"
	"github.com/aryankumar/hive/pool"
)

// Options configures a benchmark run.
type Options struct {
	// Workers is the pool size; non-positive values follow the pool's
	// CPU-offset rules
	Workers int

	// Tasks is the number of tasks to run
	Tasks int

	// TaskWork is the simulated busy time per task; zero means the
	// task body is empty, measuring pure scheduling overhead
	TaskWork time.Duration

	// Logger for structured logging
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// spin busy-loops for roughly d, simulating CPU-bound task work.
// Sleeping would park the worker goroutine and understate scheduling
// cost, so the clock is polled instead.
func spin(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}

// RunPool measures fire-and-forget submission: Tasks empty-or-spinning
// tasks pushed through Submit, then one Wait.
func RunPool(opts Options) Report {
	logger := opts.logger()
	logger.Debug("starting pool benchmark", "workers", opts.Workers, "tasks", opts.Tasks)

	p := pool.New(opts.Workers, pool.WithLogger(logger))
	defer p.Close()

	samples := make([]time.Duration, opts.Tasks)

	start := time.Now()
	for i := 0; i < opts.Tasks; i++ {
		i := i
		p.Submit(func() {
			taskStart := time.Now()
			spin(opts.TaskWork)
			samples[i] = time.Since(taskStart)
		})
	}
	p.Wait()
	elapsed := time.Since(start)

	return newReport("pool", p.Size(), elapsed, samples)
}

// RunTracked measures tracked submission: every task returns a value
// through a Future and every Future is consumed. Task failures are
// aggregated into the returned error.
func RunTracked(opts Options) (Report, error) {
	logger := opts.logger()
	logger.Debug("starting tracked benchmark", "workers", opts.Workers, "tasks", opts.Tasks)

	p := pool.New(opts.Workers, pool.WithLogger(logger))
	defer p.Close()

	samples := make([]time.Duration, opts.Tasks)
	futures := make([]*pool.Future[int], opts.Tasks)

	start := time.Now()
	for i := 0; i < opts.Tasks; i++ {
		i := i
		futures[i] = pool.Go(p, func() int {
			taskStart := time.Now()
			spin(opts.TaskWork)
			samples[i] = time.Since(taskStart)
			return i
		})
	}
	var errs util.MultiError
	for _, f := range futures {
		if _, err := f.Wait(); err != nil {
			errs.Add(err)
		}
	}
	elapsed := time.Since(start)

	return newReport("tracked", p.Size(), elapsed, samples), errs.ErrorOrNil()
}

// RunParfor measures the parallel-for engine over [0, Tasks).
func RunParfor(opts Options) Report {
	logger := opts.logger()
	logger.Debug("starting parfor benchmark", "workers", opts.Workers, "tasks", opts.Tasks)

	p := pool.New(opts.Workers, pool.WithLogger(logger))
	defer p.Close()

	samples := make([]time.Duration, opts.Tasks)

	start := time.Now()
	p.ForN(opts.Tasks, func(i int) {
		taskStart := time.Now()
		spin(opts.TaskWork)
		samples[i] = time.Since(taskStart)
	})
	elapsed := time.Since(start)

	return newReport("parfor", p.Size(), elapsed, samples)
}

// RunCyclic runs a cyclic executor for the given window and reports
// how many ticks landed and how they were spaced. Cancelling ctx cuts
// the window short; the partial report is still returned, alongside a
// cancellation error.
func RunCyclic(ctx context.Context, period, window time.Duration, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("starting cyclic benchmark", "period", period, "window", window)

	var (
		ticks   int
		samples []time.Duration
		lastRun time.Time
	)

	r := cyclic.Start(period, func() {
		now := time.Now()
		ticks++
		if !lastRun.IsZero() {
			samples = append(samples, now.Sub(lastRun))
		}
		lastRun = now
	}, cyclic.WithLogger(logger))

	var runErr error

	start := time.Now()
	timer := time.NewTimer(window)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
		runErr = util.WrapErrorf(util.ErrCancelled, "cyclic run interrupted")
	}
	r.Stop()
	elapsed := time.Since(start)

	// samples are inter-tick gaps, not ticks; report the tick count
	report := newReport("cyclic", 0, elapsed, samples)
	report.Tasks = ticks
	if elapsed > 0 {
		report.Throughput = float64(ticks) / elapsed.Seconds()
	}
	return report, runErr
}
