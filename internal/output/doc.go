// Package output provides formatters for displaying hive CLI results.
//
// The package supports multiple output formats (table, JSON, YAML) and
// provides a unified interface for rendering benchmark reports.
//
// # Basic Usage
//
//	// Create a table formatter
//	formatter := output.NewFormatter(output.FormatTable)
//
//	// Format a single data item
//	data := map[string]interface{}{"key": "value"}
//	formatter.Format(os.Stdout, data)
//
//	// Format benchmark reports
//	reports := []bench.Report{...}
//	formatter.FormatReports(os.Stdout, reports)
//
// # Options
//
// Formatters can be configured with functional options:
//
//	formatter := output.NewFormatter(
//	    output.FormatTable,
//	    output.WithNoColor(true),
//	    output.WithWide(true),
//	)
//
// Wide mode adds per-task min/avg/max latency columns to the table.
//
// # Color Support
//
// Colors are automatically enabled for TTY outputs and disabled for
// pipes and redirects, or explicitly with WithNoColor(true).
//
// Color scheme:
//   - Workload names: Cyan, Bold
//   - Success: Green
//   - Errors: Red, Bold
//   - Warnings: Yellow
//   - Headers: White, Bold
//   - Durations: Blue
//   - Counts and rates: Magenta
package output
