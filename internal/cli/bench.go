package cli

import (
	"log/slog"
	"os"

	"github.com/aryankumar/hive/internal/bench"
	"github.com/aryankumar/hive/internal/output"
	"github.com/aryankumar/hive/internal/util"
	"github.com/spf13/cobra"
)

// newBenchCmd creates the bench command
func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the pool, tracked submissions and parallel-for",
		Long: `Run the toolkit's workloads against a pool and report wall time,
throughput and per-task latency for each.

The workloads are:
  pool     fire-and-forget submission through Submit, joined by Wait
  tracked  value-returning submission through Go, every future consumed
  parfor   one task per index through the parallel-for engine
  cyclic   a cyclic executor ticking for the configured window`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd)
		},
	}

	cmd.Flags().IntP("tasks", "n", 0, "number of tasks per workload (default from config, 10000)")
	cmd.Flags().Duration("task-work", 0, "simulated busy time per task")
	cmd.Flags().StringSlice("workloads", []string{"pool", "tracked", "parfor"}, "workloads to run")
	cmd.Flags().Bool("wide", false, "include per-task latency columns")

	return cmd
}

func runBench(cmd *cobra.Command) error {
	c := conf()

	workers := workerCount(cmd)

	tasks := c.Bench.Tasks
	if cmd.Flags().Changed("tasks") {
		tasks, _ = cmd.Flags().GetInt("tasks")
	}
	if tasks <= 0 {
		return util.NewValidationError("tasks", tasks, "must be at least 1")
	}

	taskWork := resolveDuration(cmd, "task-work", c.Bench.TaskWork)

	workloads, _ := cmd.Flags().GetStringSlice("workloads")

	opts := bench.Options{
		Workers:  workers,
		Tasks:    tasks,
		TaskWork: taskWork,
		Logger:   slog.Default(),
	}

	slog.Debug("running benchmarks",
		"workers", workers,
		"tasks", tasks,
		"taskWork", taskWork,
		"workloads", workloads)

	reports := make([]bench.Report, 0, len(workloads))
	for _, w := range workloads {
		switch w {
		case "pool":
			reports = append(reports, bench.RunPool(opts))
		case "tracked":
			report, err := bench.RunTracked(opts)
			if err != nil {
				return util.WrapErrorf(err, "tracked workload")
			}
			reports = append(reports, report)
		case "parfor":
			reports = append(reports, bench.RunParfor(opts))
		case "cyclic":
			report, err := bench.RunCyclic(cmd.Context(), c.Tick.Period, c.Tick.Window, slog.Default())
			if err != nil {
				return util.WrapErrorf(err, "cyclic workload")
			}
			reports = append(reports, report)
		default:
			return util.NewValidationError("workloads", w, "unknown workload")
		}
	}

	return renderReports(cmd, reports)
}

// renderReports writes reports in the configured output format.
func renderReports(cmd *cobra.Command, reports []bench.Report) error {
	format := output.Format(outputFormat(cmd))
	switch format {
	case output.FormatTable, output.FormatJSON, output.FormatYAML:
	default:
		return util.WrapErrorf(util.ErrInvalidConfig, "unsupported output format %q", format)
	}

	wide, _ := cmd.Flags().GetBool("wide")

	formatter := output.NewFormatter(
		format,
		output.WithNoColor(colorDisabled(cmd)),
		output.WithWide(wide),
	)

	return formatter.FormatReports(os.Stdout, reports)
}
