package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aryankumar/hive/internal/bench"
	"gopkg.in/yaml.v3"
)

func sampleReports() []bench.Report {
	return []bench.Report{
		{
			Name:       "pool",
			Workers:    4,
			Tasks:      1000,
			Elapsed:    250 * time.Millisecond,
			Throughput: 4000,
			MinTask:    time.Microsecond,
			AvgTask:    5 * time.Microsecond,
			MaxTask:    40 * time.Microsecond,
		},
		{
			Name:       "parfor",
			Workers:    4,
			Tasks:      1000,
			Elapsed:    200 * time.Millisecond,
			Throughput: 5000,
		},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		expected string
	}{
		{"table", FormatTable, "*output.TableFormatter"},
		{"json", FormatJSON, "*output.JSONFormatter"},
		{"yaml", FormatYAML, "*output.YAMLFormatter"},
		{"unknown falls back to table", Format("bogus"), "*output.TableFormatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.format)
			if f == nil {
				t.Fatal("NewFormatter returned nil")
			}

			switch tt.expected {
			case "*output.TableFormatter":
				if _, ok := f.(*TableFormatter); !ok {
					t.Errorf("expected %s, got %T", tt.expected, f)
				}
			case "*output.JSONFormatter":
				if _, ok := f.(*JSONFormatter); !ok {
					t.Errorf("expected %s, got %T", tt.expected, f)
				}
			case "*output.YAMLFormatter":
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Errorf("expected %s, got %T", tt.expected, f)
				}
			}
		})
	}
}

func TestTableFormatter_FormatReports(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true})

	if err := f.FormatReports(&buf, sampleReports()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, expected := range []string{"WORKLOAD", "pool", "parfor", "4000", "Summary", "2 runs", "2000 tasks"} {
		if !strings.Contains(out, expected) {
			t.Errorf("table output missing %q:\n%s", expected, out)
		}
	}
}

func TestTableFormatter_Wide(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true, Wide: true})

	if err := f.FormatReports(&buf, sampleReports()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, expected := range []string{"MIN", "AVG", "MAX", "5µs"} {
		if !strings.Contains(out, expected) {
			t.Errorf("wide output missing %q:\n%s", expected, out)
		}
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&Options{NoColor: true})

	if err := f.FormatReports(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No reports") {
		t.Errorf("expected empty-report notice, got:\n%s", buf.String())
	}
}

func TestJSONFormatter_FormatReports(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(nil)

	if err := f.FormatReports(&buf, sampleReports()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0]["workload"] != "pool" {
		t.Errorf("expected workload pool, got %v", decoded[0]["workload"])
	}
	if decoded[0]["tasks"] != float64(1000) {
		t.Errorf("expected 1000 tasks, got %v", decoded[0]["tasks"])
	}
}

func TestYAMLFormatter_FormatReports(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(nil)

	if err := f.FormatReports(&buf, sampleReports()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[1]["workload"] != "parfor" {
		t.Errorf("expected workload parfor, got %v", decoded[1]["workload"])
	}
}

func TestColorScheme_NonTTY(t *testing.T) {
	var buf bytes.Buffer

	colors := NewColorScheme(&buf, false)
	if !colors.Disabled {
		t.Error("expected colors disabled for non-TTY writer")
	}

	// No-op color functions still format.
	if got := colors.Workload("w-%d", 7); got != "w-7" {
		t.Errorf("expected plain formatting, got %q", got)
	}
}
