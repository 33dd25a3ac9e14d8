package proc

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// systemLister enumerates live processes via gopsutil.
type systemLister struct{}

func (systemLister) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	wrapped := make([]Process, len(procs))
	for i, p := range procs {
		wrapped[i] = systemProcess{p: p}
	}
	return wrapped, nil
}

// systemProcess adapts *process.Process to the Process interface.
type systemProcess struct {
	p *process.Process
}

func (s systemProcess) Pid() int32 {
	return s.p.Pid
}

func (s systemProcess) Name() (string, error) {
	return s.p.Name()
}

func (s systemProcess) Terminate() error {
	return s.p.Terminate()
}

func (s systemProcess) Kill() error {
	return s.p.Kill()
}

func (s systemProcess) IsRunning() (bool, error) {
	return s.p.IsRunning()
}
