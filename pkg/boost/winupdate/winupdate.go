// Package winupdate probes for pending Windows updates. Pending updates
// routinely cause background CPU and disk churn, so the pipeline surfaces
// them without installing anything.
package winupdate

import (
	"context"
	"strings"
	"time"

	"github.com/jamesainslie/gptboost/pkg/boost/execx"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// Status is the outcome of an update probe.
type Status string

const (
	// StatusNone means no pending updates were reported.
	StatusNone Status = "none"

	// StatusAvailable means updates are pending installation.
	StatusAvailable Status = "available"

	// StatusUnknown means the probe could not determine update state,
	// typically because the PSWindowsUpdate module is not installed or
	// the query timed out.
	StatusUnknown Status = "unknown"
)

// probeTimeout bounds the PowerShell query. The update session can hang
// indefinitely when the service is busy.
const probeTimeout = 30 * time.Second

// Checker probes Windows Update state.
type Checker struct {
	runner  execx.Runner
	timeout time.Duration
	logger  *logging.Logger
}

// Options configures a Checker.
type Options struct {
	// Runner executes system commands. Defaults to execx.New().
	Runner execx.Runner

	// Timeout bounds the probe. Defaults to 30 seconds.
	Timeout time.Duration

	// Logger is the component logger. Defaults to "winupdate".
	Logger *logging.Logger
}

// NewChecker creates a Checker from the given options.
func NewChecker(opts Options) *Checker {
	runner := opts.Runner
	if runner == nil {
		runner = execx.New()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = probeTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("winupdate")
	}

	return &Checker{runner: runner, timeout: timeout, logger: logger}
}

// Check queries pending updates through PowerShell. Probe failures are
// not errors: the pipeline only wants a hint, so an unreachable update
// service maps to StatusUnknown.
func (c *Checker) Check(ctx context.Context) Status {
	c.logger.Debug("checking for pending Windows updates")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.runner.Output(ctx, "powershell",
		"-NoProfile", "-Command", "Get-WindowsUpdate")
	if err != nil {
		c.logger.Info("could not check for updates automatically", "error", err)
		return StatusUnknown
	}

	if strings.TrimSpace(out) == "" || strings.Contains(out, "No updates") {
		c.logger.Info("no Windows updates pending")
		return StatusNone
	}

	c.logger.Info("Windows updates available, consider installing them")
	return StatusAvailable
}
