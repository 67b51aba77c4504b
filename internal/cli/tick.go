package cli

import (
	"log/slog"

	"github.com/aryankumar/hive/cyclic"
	"github.com/aryankumar/hive/internal/bench"
	"github.com/aryankumar/hive/internal/util"
	"github.com/spf13/cobra"
)

// newTickCmd creates the tick command
func newTickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run a cyclic workload at a fixed rate",
		Long: `Run a cyclic executor for a window of time and report how many ticks
landed and how they were spaced. The rate can be given as a period or
as a frequency; a zero period runs the callable in a tight loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTick(cmd)
		},
	}

	cmd.Flags().DurationP("period", "p", 0, "minimum interval between invocations")
	cmd.Flags().Float64("hz", 0, "invocation frequency in hertz (overrides --period)")
	cmd.Flags().DurationP("window", "d", 0, "how long to run (default from config, 1s)")
	cmd.Flags().Bool("wide", false, "include tick-spacing columns")

	return cmd
}

func runTick(cmd *cobra.Command) error {
	c := conf()

	period := resolveDuration(cmd, "period", c.Tick.Period)

	if hz, _ := cmd.Flags().GetFloat64("hz"); hz > 0 {
		period = cyclic.Hz(hz)
	}

	window := resolveDuration(cmd, "window", c.Tick.Window)
	if window <= 0 {
		return util.NewValidationError("window", window, "must be positive")
	}

	slog.Debug("running cyclic workload", "period", period, "window", window)

	report, err := bench.RunCyclic(cmd.Context(), period, window, slog.Default())
	if err != nil {
		// A shutdown signal cuts the window short; report what ran.
		if util.IsCancelled(err) {
			slog.Warn("tick run interrupted, reporting partial window")
			if renderErr := renderReports(cmd, []bench.Report{report}); renderErr != nil {
				return renderErr
			}
		}
		return err
	}

	return renderReports(cmd, []bench.Report{report})
}
