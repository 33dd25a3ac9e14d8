package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// systemSampler reads utilization through gopsutil. CPU is measured over
// a one-second window, which also paces the sampling loop.
type systemSampler struct {
	interval time.Duration
}

// NewSystemSampler returns a Sampler backed by live system counters.
func NewSystemSampler() Sampler {
	return &systemSampler{interval: time.Second}
}

func (s *systemSampler) Sample(ctx context.Context) (Reading, error) {
	percents, err := cpu.PercentWithContext(ctx, s.interval, false)
	if err != nil {
		return Reading{}, fmt.Errorf("reading cpu utilization: %w", err)
	}

	var cpuPercent float64
	if len(percents) > 0 {
		cpuPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Reading{}, fmt.Errorf("reading memory utilization: %w", err)
	}

	return Reading{CPU: cpuPercent, Memory: vm.UsedPercent}, nil
}
