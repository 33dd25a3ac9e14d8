// Package monitor samples CPU and memory utilization for a fixed window
// after the optimization pipeline runs, so the user can see whether the
// machine actually quieted down.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/logging"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// highUsageThreshold is the average utilization percentage above which a
// summary is flagged.
const highUsageThreshold = 80.0

// Reading is one CPU/memory sample.
type Reading struct {
	// CPU is the CPU utilization percentage over the sampling interval.
	CPU float64

	// Memory is the virtual memory utilization percentage.
	Memory float64
}

// Sampler produces resource readings. Each call is expected to block for
// roughly the sampling interval (the system sampler measures CPU over a
// one-second window).
type Sampler interface {
	Sample(ctx context.Context) (Reading, error)
}

// Options configures a Monitor.
type Options struct {
	// Sampler produces readings. Defaults to the gopsutil-backed sampler.
	Sampler Sampler

	// OnReading, if set, is invoked with each sample as it is taken.
	// Used by the CLI to render a live usage line.
	OnReading func(Reading)

	// Logger is the component logger. Defaults to "monitor".
	Logger *logging.Logger
}

// Monitor runs the sampling loop.
type Monitor struct {
	sampler   Sampler
	onReading func(Reading)
	logger    *logging.Logger
}

// New creates a Monitor from the given options.
func New(opts Options) *Monitor {
	sampler := opts.Sampler
	if sampler == nil {
		sampler = NewSystemSampler()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("monitor")
	}

	return &Monitor{
		sampler:   sampler,
		onReading: opts.OnReading,
		logger:    logger,
	}
}

// Run samples until the duration elapses or the context is cancelled and
// returns the aggregated summary. Cancellation is not an error: the
// summary covers whatever samples were taken, so an interrupted run still
// reports something useful. A zero-sample run returns a zero summary.
func (m *Monitor) Run(ctx context.Context, duration time.Duration) (types.MonitorSummary, error) {
	m.logger.Info("monitoring system resources", "duration", duration)

	summary := types.MonitorSummary{Duration: duration}
	deadline := time.Now().Add(duration)

	var cpuTotal, memTotal float64
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			break
		}

		reading, err := m.sampler.Sample(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return summary, fmt.Errorf("sampling resources: %w", err)
		}

		summary.Samples++
		cpuTotal += reading.CPU
		memTotal += reading.Memory

		if m.onReading != nil {
			m.onReading(reading)
		}
	}

	if summary.Samples == 0 {
		return summary, nil
	}

	summary.AvgCPU = cpuTotal / float64(summary.Samples)
	summary.AvgMemory = memTotal / float64(summary.Samples)
	summary.HighUsage = summary.AvgCPU > highUsageThreshold || summary.AvgMemory > highUsageThreshold

	m.logger.Info("monitoring complete",
		"samples", summary.Samples,
		"avg_cpu", fmt.Sprintf("%.1f%%", summary.AvgCPU),
		"avg_memory", fmt.Sprintf("%.1f%%", summary.AvgMemory))

	if summary.HighUsage {
		m.logger.Warn("high resource usage detected, consider closing more applications")
	}

	return summary, nil
}
