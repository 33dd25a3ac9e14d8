// Package proc closes non-essential background processes to free
// resources. Processes are matched by image name against a configured
// list, terminated gracefully, and force killed only after a fixed
// wait for exit.
package proc

import (
	"context"
	"strings"
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// pollInterval is how often a terminated process is re-checked for exit.
const pollInterval = 100 * time.Millisecond

// Process is the subset of process operations the closer needs.
// It exists so tests can substitute fakes for live processes.
type Process interface {
	Pid() int32
	Name() (string, error)
	Terminate() error
	Kill() error
	IsRunning() (bool, error)
}

// Lister enumerates running processes.
type Lister interface {
	Processes(ctx context.Context) ([]Process, error)
}

// ClosedProcess records one process the closer acted on.
type ClosedProcess struct {
	// Name is the process image name, e.g. "OneDrive.exe".
	Name string `json:"name"`

	// PID is the process ID.
	PID int32 `json:"pid"`

	// Forced indicates the process ignored the graceful terminate and
	// had to be killed.
	Forced bool `json:"forced"`
}

// Options configures a Closer.
type Options struct {
	// Names lists process image names to close, matched
	// case-insensitively.
	Names []string

	// TerminateWait is how long to wait for a graceful exit before
	// force killing.
	TerminateWait time.Duration

	// DryRun reports matching processes without touching them.
	DryRun bool

	// Lister enumerates processes. Defaults to the live system.
	Lister Lister

	// Logger is the component logger. Defaults to the "proc" component.
	Logger *logging.Logger
}

// Closer terminates the configured background processes.
type Closer struct {
	names  map[string]struct{}
	wait   time.Duration
	dryRun bool
	lister Lister
	logger *logging.Logger
}

// NewCloser creates a Closer from the given options.
func NewCloser(opts Options) *Closer {
	names := make(map[string]struct{}, len(opts.Names))
	for _, n := range opts.Names {
		names[strings.ToLower(n)] = struct{}{}
	}

	lister := opts.Lister
	if lister == nil {
		lister = systemLister{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("proc")
	}

	return &Closer{
		names:  names,
		wait:   opts.TerminateWait,
		dryRun: opts.DryRun,
		lister: lister,
		logger: logger,
	}
}

// CloseAll terminates every running process whose name is on the
// configured list and returns the processes acted on. Processes that
// vanish or deny access mid-flight are skipped, not errors. Only a
// failure to enumerate processes at all is returned as an error.
func (c *Closer) CloseAll(ctx context.Context) ([]ClosedProcess, error) {
	procs, err := c.lister.Processes(ctx)
	if err != nil {
		return nil, err
	}

	var closed []ClosedProcess
	for _, p := range procs {
		if ctx.Err() != nil {
			return closed, ctx.Err()
		}

		name, err := p.Name()
		if err != nil {
			// Process exited or access denied; skip.
			continue
		}
		if _, ok := c.names[strings.ToLower(name)]; !ok {
			continue
		}

		if c.dryRun {
			c.logger.Info("dry-run: would close process", "name", name, "pid", p.Pid())
			closed = append(closed, ClosedProcess{Name: name, PID: p.Pid()})
			continue
		}

		if err := p.Terminate(); err != nil {
			c.logger.Debug("could not terminate process", "name", name, "pid", p.Pid(), "error", err)
			continue
		}

		forced := false
		if !c.waitForExit(ctx, p) {
			if err := p.Kill(); err != nil {
				c.logger.Debug("could not kill process", "name", name, "pid", p.Pid(), "error", err)
				continue
			}
			forced = true
		}

		c.logger.Info("closed process", "name", name, "pid", p.Pid(), "forced", forced)
		closed = append(closed, ClosedProcess{Name: name, PID: p.Pid(), Forced: forced})
	}

	return closed, nil
}

// waitForExit polls until the process exits or the terminate wait
// elapses. It returns true if the process exited.
func (c *Closer) waitForExit(ctx context.Context, p Process) bool {
	deadline := time.Now().Add(c.wait)
	for time.Now().Before(deadline) {
		running, err := p.IsRunning()
		if err != nil || !running {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(pollInterval):
		}
	}
	return false
}
