// Package types provides core data types for the gptboost optimizer.
// It includes the browser enumeration, per-step result records, and the
// aggregate run report, along with size formatting helpers.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Browser identifies a supported browser for cache clearing.
type Browser string

// Supported browsers.
const (
	BrowserEdge      Browser = "edge"
	BrowserChrome    Browser = "chrome"
	BrowserFirefox   Browser = "firefox"
	BrowserLibreWolf Browser = "librewolf"
)

// ErrUnknownBrowser indicates that a browser name could not be parsed.
var ErrUnknownBrowser = errors.New("unknown browser")

// ParseBrowser parses a browser name case-insensitively.
// An empty string is valid and means "detect the default browser".
func ParseBrowser(s string) (Browser, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "edge", "msedge":
		return BrowserEdge, nil
	case "chrome":
		return BrowserChrome, nil
	case "firefox":
		return BrowserFirefox, nil
	case "librewolf":
		return BrowserLibreWolf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBrowser, s)
	}
}

// Browsers returns the list of supported browser names.
func Browsers() []string {
	return []string{
		string(BrowserEdge),
		string(BrowserChrome),
		string(BrowserFirefox),
		string(BrowserLibreWolf),
	}
}

// StepStatus describes the outcome of a single optimization step.
type StepStatus string

// Step outcomes.
const (
	// StatusOK means the step completed.
	StatusOK StepStatus = "ok"
	// StatusSkipped means the step was skipped (disabled, dry-run, or
	// not applicable on this platform).
	StatusSkipped StepStatus = "skipped"
	// StatusWarning means the step partially failed but the run continued.
	StatusWarning StepStatus = "warning"
	// StatusFailed means the step failed entirely; the run still continues.
	StatusFailed StepStatus = "failed"
)

// Step names used in reports and manifest entries.
const (
	StepPower     = "power"
	StepProcesses = "processes"
	StepCache     = "cache"
	StepDNS       = "dns"
	StepUpdates   = "updates"
	StepMonitor   = "monitor"
	StepRestore   = "restore"
)

// StepResult records the outcome of one optimization step.
type StepResult struct {
	// Name is the step name (see Step* constants).
	Name string `json:"name"`

	// Status is the step outcome.
	Status StepStatus `json:"status"`

	// Detail is a one-line human-readable summary.
	Detail string `json:"detail,omitempty"`

	// Items is the number of things the step acted on
	// (processes closed, cache directories cleared).
	Items int `json:"items,omitempty"`

	// Bytes is the number of bytes the step reclaimed, if any.
	Bytes int64 `json:"bytes,omitempty"`

	// Elapsed is the time the step took.
	Elapsed time.Duration `json:"elapsed"`
}

// HumanBytes returns the reclaimed bytes formatted as a human-readable string.
func (s *StepResult) HumanBytes() string {
	return FormatSize(s.Bytes)
}

// MonitorSummary aggregates the post-optimization resource sampling loop.
type MonitorSummary struct {
	// Samples is the number of readings taken.
	Samples int `json:"samples"`

	// AvgCPU is the average CPU utilization percentage.
	AvgCPU float64 `json:"avg_cpu"`

	// AvgMemory is the average virtual memory utilization percentage.
	AvgMemory float64 `json:"avg_memory"`

	// Duration is the requested sampling duration.
	Duration time.Duration `json:"duration"`

	// HighUsage indicates average CPU or memory above the warning threshold.
	HighUsage bool `json:"high_usage"`
}

// RunReport contains the complete outcome of an optimize or undo run.
type RunReport struct {
	// Operation is "optimize" or "undo".
	Operation string `json:"operation"`

	// Steps holds the per-step results in execution order.
	Steps []StepResult `json:"steps"`

	// Monitor holds the resource sampling summary, if monitoring ran.
	Monitor *MonitorSummary `json:"monitor,omitempty"`

	// Browser is the browser whose cache was cleared, if any.
	Browser Browser `json:"browser,omitempty"`

	// PreviousScheme is the power scheme GUID active before the switch.
	PreviousScheme string `json:"previous_scheme,omitempty"`

	// DryRun indicates no mutations were performed.
	DryRun bool `json:"dry_run"`

	// Elevated indicates the run had administrator privileges.
	Elevated bool `json:"elevated"`

	// Interrupted indicates the run was cancelled by the user.
	Interrupted bool `json:"interrupted"`

	// Warnings contains non-fatal messages accumulated during the run.
	Warnings []string `json:"warnings,omitempty"`

	// Elapsed is the total run time.
	Elapsed time.Duration `json:"elapsed"`
}

// BytesFreed returns the total bytes reclaimed across all steps.
func (r *RunReport) BytesFreed() int64 {
	var total int64
	for _, s := range r.Steps {
		total += s.Bytes
	}
	return total
}

// AddStep appends a step result to the report.
func (r *RunReport) AddStep(s StepResult) {
	r.Steps = append(r.Steps, s)
}

// Warnf appends a formatted warning message to the report.
func (r *RunReport) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// FormatSize formats a byte count as a human-readable string using
// binary (IEC) units.
func FormatSize(size int64) string {
	if size < 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(size))
}

// Binary size multipliers.
const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
	TiB       = 1024 * GiB
)

// sizePattern matches size strings like "100M", "2G", "500K", "1.5GB", etc.
var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([KMGT]?(?:i?B)?)\s*$`)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ParseSize parses a human-readable size string and returns the size in
// bytes. Suffixes use binary multipliers regardless of spelling, so
// "10MB", "10M", and "10MiB" all mean ten mebibytes. Decimal values are
// supported and truncated to the nearest byte.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	matches := sizePattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	suffix := strings.ToUpper(matches[2])
	suffix = strings.TrimSuffix(suffix, "IB")
	suffix = strings.TrimSuffix(suffix, "B")

	var multiplier int64
	switch suffix {
	case "":
		multiplier = 1
	case "K":
		multiplier = KiB
	case "M":
		multiplier = MiB
	case "G":
		multiplier = GiB
	case "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, suffix)
	}

	return int64(value * float64(multiplier)), nil
}
