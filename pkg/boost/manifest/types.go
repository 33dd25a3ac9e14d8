// Package manifest records optimization runs to the filesystem so the
// user can review what was changed and when.
package manifest

import (
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// OperationType represents the type of operation.
type OperationType string

const (
	// OpOptimize represents an optimization run.
	OpOptimize OperationType = "optimize"
	// OpUndo represents an undo run.
	OpUndo OperationType = "undo"
)

// Entry represents a single recorded run.
type Entry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Operation OperationType `json:"operation"`
	Steps     []StepRecord  `json:"steps"`
	Summary   Summary       `json:"summary"`
}

// StepRecord captures one pipeline step of a run.
type StepRecord struct {
	Name    string           `json:"name"`
	Status  types.StepStatus `json:"status"`
	Detail  string           `json:"detail,omitempty"`
	Items   int              `json:"items,omitempty"`
	Bytes   int64            `json:"bytes,omitempty"`
	Elapsed time.Duration    `json:"elapsed"`
}

// Summary contains run-level totals.
type Summary struct {
	Browser        types.Browser `json:"browser,omitempty"`
	PreviousScheme string        `json:"previous_scheme,omitempty"`
	BytesFreed     int64         `json:"bytes_freed"`
	DryRun         bool          `json:"dry_run,omitempty"`
	Elapsed        time.Duration `json:"elapsed"`
}

// FromReport converts a pipeline report into the records an Entry
// persists.
func FromReport(report *types.RunReport) ([]StepRecord, Summary) {
	steps := make([]StepRecord, 0, len(report.Steps))
	for _, s := range report.Steps {
		steps = append(steps, StepRecord{
			Name:    s.Name,
			Status:  s.Status,
			Detail:  s.Detail,
			Items:   s.Items,
			Bytes:   s.Bytes,
			Elapsed: s.Elapsed,
		})
	}

	summary := Summary{
		Browser:        report.Browser,
		PreviousScheme: report.PreviousScheme,
		BytesFreed:     report.BytesFreed(),
		DryRun:         report.DryRun,
		Elapsed:        report.Elapsed,
	}
	return steps, summary
}
