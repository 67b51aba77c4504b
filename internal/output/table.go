package output

import (
	"fmt"
	"io"
	"time"

	"github.com/aryankumar/hive/internal/bench"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	table := f.createTable(w)

	switch v := data.(type) {
	case map[string]interface{}:
		return f.formatMap(table, v)
	case string:
		fmt.Fprintln(w, v)
		return nil
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatReports outputs benchmark reports as a table
func (f *TableFormatter) FormatReports(w io.Writer, reports []bench.Report) error {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)

	table := f.createTable(w)

	headers := []string{"WORKLOAD", "WORKERS", "TASKS", "ELAPSED", "TASKS/SEC"}
	if f.options.Wide {
		headers = append(headers, "MIN", "AVG", "MAX")
	}

	if !f.options.NoHeaders {
		if colors.Disabled {
			table.SetHeader(headers)
		} else {
			coloredHeaders := make([]string, len(headers))
			for i, h := range headers {
				coloredHeaders[i] = colors.Header(h)
			}
			table.SetHeader(coloredHeaders)
		}
	}

	for _, report := range reports {
		table.Append(f.formatReportRow(report, colors))
	}

	table.Render()

	f.printSummary(w, reports, colors)

	return nil
}

// formatReportRow formats a single report as a table row
func (f *TableFormatter) formatReportRow(report bench.Report, colors *ColorScheme) []string {
	name := report.Name
	if !colors.Disabled {
		name = colors.Workload(name)
	}

	workers := fmt.Sprintf("%d", report.Workers)
	tasks := fmt.Sprintf("%d", report.Tasks)

	elapsed := report.Elapsed.Round(time.Microsecond).String()
	if !colors.Disabled {
		elapsed = colors.Duration(elapsed)
	}

	throughput := fmt.Sprintf("%.0f", report.Throughput)
	if !colors.Disabled {
		throughput = colors.Number(throughput)
	}

	row := []string{name, workers, tasks, elapsed, throughput}

	if f.options.Wide {
		row = append(row,
			report.MinTask.Round(time.Nanosecond).String(),
			report.AvgTask.Round(time.Nanosecond).String(),
			report.MaxTask.Round(time.Nanosecond).String())
	}

	return row
}

// formatMap formats a map as a two-column table (key-value pairs)
func (f *TableFormatter) formatMap(table *tablewriter.Table, data map[string]interface{}) error {
	if !f.options.NoHeaders {
		table.SetHeader([]string{"KEY", "VALUE"})
	}

	for k, v := range data {
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}

	table.Render()
	return nil
}

// createTable creates a new borderless, tab-separated table
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints a summary line under the table
func (f *TableFormatter) printSummary(w io.Writer, reports []bench.Report, colors *ColorScheme) {
	var totalTasks int
	var total time.Duration
	for _, r := range reports {
		totalTasks += r.Tasks
		total += r.Elapsed
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	runsText := fmt.Sprintf("%d runs", len(reports))
	if !colors.Disabled {
		runsText = colors.Success(runsText)
	}

	tasksText := fmt.Sprintf("%d tasks", totalTasks)
	if !colors.Disabled {
		tasksText = colors.Number(tasksText)
	}

	totalText := fmt.Sprintf("total=%s", total.Round(time.Microsecond))
	if !colors.Disabled {
		totalText = colors.Duration(totalText)
	}

	fmt.Fprintf(w, "%s, %s, %s\n", runsText, tasksText, totalText)
}
