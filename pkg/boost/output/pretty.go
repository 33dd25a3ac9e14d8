package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// PrettyFormatter formats a run report with colors and styling using
// lipgloss. It produces a visually appealing output suitable for
// terminal display.
type PrettyFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *types.RunReport) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatSteps(r))

	if r.Monitor != nil && r.Monitor.Samples > 0 {
		w.WriteString(f.formatMonitor(r.Monitor))
	}

	w.WriteString(f.formatFooter(r))

	if len(r.Warnings) > 0 {
		w.WriteString("\n")
		w.WriteString(f.formatWarnings(r.Warnings))
	}

	return nil
}

// formatHeader builds the header box with run metadata.
func (f *PrettyFormatter) formatHeader(r *types.RunReport) string {
	var lines []string

	title := "System optimization"
	if r.Operation == "undo" {
		title = "Undo optimization"
	}
	titleLine := TitleStyle.Render(title)
	if r.DryRun {
		titleLine += "  " + WarningStyle.Render("(dry run)")
	}
	lines = append(lines, titleLine)

	var infoParts []string
	if r.Browser != "" {
		infoParts = append(infoParts,
			fmt.Sprintf("%s %s", LabelStyle.Render("Browser:"), ValueStyle.Render(string(r.Browser))))
	}
	infoParts = append(infoParts, f.formatElevation(r.Elevated))
	lines = append(lines, strings.Join(infoParts, "  "))

	if r.Interrupted {
		lines = append(lines, WarningStyle.Bold(true).Render("Run interrupted by user"))
	}

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatElevation returns a styled string indicating privilege level.
func (f *PrettyFormatter) formatElevation(elevated bool) string {
	if elevated {
		return SuccessStyle.Render("administrator")
	}
	return MutedStyle.Render("limited privileges")
}

// formatSteps builds the step table.
func (f *PrettyFormatter) formatSteps(r *types.RunReport) string {
	if len(r.Steps) == 0 {
		return MutedStyle.Render("  No steps ran\n")
	}

	var sb strings.Builder

	stepHeader := TableHeaderStyle.Render("STEP")
	detailHeader := TableHeaderStyle.Render("DETAIL")
	sb.WriteString(fmt.Sprintf("  %s  %-12s  %s\n", stepHeader, "", detailHeader))

	for _, step := range r.Steps {
		marker := f.statusMarker(step.Status)
		detail := step.Detail
		if step.Bytes > 0 {
			detail = fmt.Sprintf("%s (%s)", detail, SizeStyle.Render(step.HumanBytes()))
		}
		sb.WriteString(fmt.Sprintf("  %s  %-12s  %s\n", marker, step.Name, ValueStyle.Render(detail)))
	}

	return sb.String()
}

// statusMarker returns a colored status glyph for a step.
func (f *PrettyFormatter) statusMarker(status types.StepStatus) string {
	switch status {
	case types.StatusOK:
		return SuccessStyle.Render("ok  ")
	case types.StatusSkipped:
		return MutedStyle.Render("skip")
	case types.StatusWarning:
		return WarningStyle.Render("warn")
	default:
		return ErrorStyle.Render("fail")
	}
}

// formatMonitor builds the resource sampling summary line.
func (f *PrettyFormatter) formatMonitor(m *types.MonitorSummary) string {
	cpuLabel := LabelStyle.Render("Avg CPU:")
	memLabel := LabelStyle.Render("Avg RAM:")
	line := fmt.Sprintf("  %s %s  %s %s  %s",
		cpuLabel, ValueStyle.Render(fmt.Sprintf("%.1f%%", m.AvgCPU)),
		memLabel, ValueStyle.Render(fmt.Sprintf("%.1f%%", m.AvgMemory)),
		MutedStyle.Render(fmt.Sprintf("(%d samples over %s)", m.Samples, formatDuration(m.Duration))))

	if m.HighUsage {
		line += "\n  " + WarningStyle.Render("High resource usage, consider closing more applications")
	}

	return line + "\n"
}

// formatFooter builds the footer box with summary information.
func (f *PrettyFormatter) formatFooter(r *types.RunReport) string {
	var parts []string

	freedLabel := LabelStyle.Render("Freed:")
	freedValue := SizeStyle.Render(humanize.IBytes(uint64(r.BytesFreed())))
	parts = append(parts, fmt.Sprintf("%s %s", freedLabel, freedValue))

	elapsedLabel := LabelStyle.Render("Elapsed:")
	elapsedValue := ValueStyle.Render(formatDuration(r.Elapsed))
	parts = append(parts, fmt.Sprintf("%s %s", elapsedLabel, elapsedValue))

	hint := MutedStyle.Render("Use -o plain for unformatted output")
	parts = append(parts, hint)

	return FooterBox.Render(strings.Join(parts, "  "))
}

// formatWarnings builds a warning block.
func (f *PrettyFormatter) formatWarnings(warnings []string) string {
	var sb strings.Builder

	sb.WriteString(WarningStyle.Bold(true).Render("Warnings:"))
	sb.WriteString("\n")

	for _, warning := range warnings {
		sb.WriteString(WarningStyle.Render("  " + warning))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatDuration formats a duration as a human-friendly string.
func formatDuration(d time.Duration) string {
	sec := d.Seconds()
	if sec < 1 {
		return fmt.Sprintf("%.0fms", sec*1000)
	}
	if sec < 60 {
		return fmt.Sprintf("%.1fs", sec)
	}
	minutes := int(sec) / 60
	seconds := int(sec) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
