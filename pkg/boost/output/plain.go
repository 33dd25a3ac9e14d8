package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// PlainFormatter formats a run report as a simple tab-separated table.
// It produces plain text output suitable for scripting and piping.
// No colors or styling are applied.
type PlainFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *types.RunReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "STEP\tSTATUS\tDETAIL"); err != nil {
		return err
	}

	for _, step := range r.Steps {
		detail := step.Detail
		if step.Bytes > 0 {
			detail = fmt.Sprintf("%s (%s)", detail, step.HumanBytes())
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", step.Name, step.Status, detail); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Monitor != nil && r.Monitor.Samples > 0 {
		fmt.Fprintf(w, "avg cpu: %.1f%%  avg memory: %.1f%%  samples: %d\n",
			r.Monitor.AvgCPU, r.Monitor.AvgMemory, r.Monitor.Samples)
	}

	fmt.Fprintf(w, "freed: %s  elapsed: %s\n",
		types.FormatSize(r.BytesFreed()), r.Elapsed.Round(time.Millisecond))

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
