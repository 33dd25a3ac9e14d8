package output

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Operation string       `json:"operation"`
	Steps     []jsonStep   `json:"steps"`
	Monitor   *jsonMonitor `json:"monitor,omitempty"`
	Meta      jsonMeta     `json:"meta"`
}

// jsonStep represents one pipeline step in JSON output.
type jsonStep struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	Items      int    `json:"items,omitempty"`
	Bytes      int64  `json:"bytes,omitempty"`
	BytesHuman string `json:"bytes_human,omitempty"`
	Elapsed    string `json:"elapsed"`
}

// jsonMonitor represents the resource sampling summary in JSON output.
type jsonMonitor struct {
	Samples   int     `json:"samples"`
	AvgCPU    float64 `json:"avg_cpu"`
	AvgMemory float64 `json:"avg_memory"`
	Duration  string  `json:"duration"`
	HighUsage bool    `json:"high_usage"`
}

// jsonMeta represents run metadata in JSON output.
type jsonMeta struct {
	Browser        string   `json:"browser,omitempty"`
	PreviousScheme string   `json:"previous_scheme,omitempty"`
	BytesFreed     int64    `json:"bytes_freed"`
	DryRun         bool     `json:"dry_run"`
	Elevated       bool     `json:"elevated"`
	Interrupted    bool     `json:"interrupted"`
	Warnings       []string `json:"warnings,omitempty"`
	Elapsed        string   `json:"elapsed"`
}

// JSONFormatter formats a run report as a single indented JSON object.
type JSONFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *types.RunReport) error {
	steps := make([]jsonStep, len(r.Steps))
	for i, step := range r.Steps {
		steps[i] = jsonStep{
			Name:    step.Name,
			Status:  string(step.Status),
			Detail:  step.Detail,
			Items:   step.Items,
			Bytes:   step.Bytes,
			Elapsed: formatDurationString(step.Elapsed),
		}
		if step.Bytes > 0 {
			steps[i].BytesHuman = step.HumanBytes()
		}
	}

	var mon *jsonMonitor
	if r.Monitor != nil {
		mon = &jsonMonitor{
			Samples:   r.Monitor.Samples,
			AvgCPU:    r.Monitor.AvgCPU,
			AvgMemory: r.Monitor.AvgMemory,
			Duration:  formatDurationString(r.Monitor.Duration),
			HighUsage: r.Monitor.HighUsage,
		}
	}

	out := jsonOutput{
		Operation: r.Operation,
		Steps:     steps,
		Monitor:   mon,
		Meta: jsonMeta{
			Browser:        string(r.Browser),
			PreviousScheme: r.PreviousScheme,
			BytesFreed:     r.BytesFreed(),
			DryRun:         r.DryRun,
			Elevated:       r.Elevated,
			Interrupted:    r.Interrupted,
			Warnings:       r.Warnings,
			Elapsed:        formatDurationString(r.Elapsed),
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// formatDurationString formats a duration as a string for JSON output.
func formatDurationString(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
