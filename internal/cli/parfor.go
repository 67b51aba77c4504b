package cli

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/aryankumar/hive/internal/util"
	"github.com/aryankumar/hive/pool"
	"github.com/spf13/cobra"
)

// newParforCmd creates the parfor command
func newParforCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parfor",
		Short: "Demonstrate the parallel-for engine",
		Long: `Count primes below a bound by decomposing the range across the pool's
workers with the parallel-for engine, and compare against a serial run
of the same body.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParfor(cmd)
		},
	}

	cmd.Flags().IntP("bound", "b", 200000, "count primes below this bound")

	return cmd
}

func runParfor(cmd *cobra.Command) error {
	workers := workerCount(cmd)
	bound, _ := cmd.Flags().GetInt("bound")
	if bound < 0 {
		return util.NewValidationError("bound", bound, "must not be negative")
	}

	p := pool.New(workers)
	defer p.Close()

	slog.Debug("starting parallel prime count", "workers", p.Size(), "bound", bound)

	var parallelTotal atomic.Int64

	parallelStart := time.Now()
	p.ForN(bound, func(i int) {
		if isPrime(i) {
			parallelTotal.Add(1)
		}
	})
	parallelElapsed := time.Since(parallelStart)

	serialStart := time.Now()
	serialTotal := 0
	for i := 0; i < bound; i++ {
		if isPrime(i) {
			serialTotal++
		}
	}
	serialElapsed := time.Since(serialStart)

	if int(parallelTotal.Load()) != serialTotal {
		return fmt.Errorf("parallel count %d disagrees with serial count %d",
			parallelTotal.Load(), serialTotal)
	}

	fmt.Printf("primes below %d: %d\n", bound, serialTotal)
	fmt.Printf("parallel (%d workers): %v\n", p.Size(), parallelElapsed.Round(time.Microsecond))
	fmt.Printf("serial:               %v\n", serialElapsed.Round(time.Microsecond))
	if parallelElapsed > 0 {
		fmt.Printf("speedup:              %.2fx\n", float64(serialElapsed)/float64(parallelElapsed))
	}

	return nil
}

// isPrime is a deliberately unoptimized trial-division check, giving
// the parallel-for body measurable CPU work per index.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	limit := int(math.Sqrt(float64(n)))
	for d := 2; d <= limit; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
