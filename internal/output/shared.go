package output

import "github.com/aryankumar/hive/internal/bench"

// reportFields flattens a report for the structured formatters.
func reportFields(r bench.Report) map[string]interface{} {
	return map[string]interface{}{
		"workload":   r.Name,
		"workers":    r.Workers,
		"tasks":      r.Tasks,
		"elapsed":    r.Elapsed.String(),
		"throughput": r.Throughput,
		"minTask":    r.MinTask.String(),
		"avgTask":    r.AvgTask.String(),
		"maxTask":    r.MaxTask.String(),
	}
}
