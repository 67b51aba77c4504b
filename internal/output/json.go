package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/hive/internal/bench"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatReports outputs benchmark reports as JSON
func (f *JSONFormatter) FormatReports(w io.Writer, reports []bench.Report) error {
	// Convert reports to a more JSON-friendly structure
	output := make([]map[string]interface{}, len(reports))

	for i, r := range reports {
		output[i] = reportFields(r)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
