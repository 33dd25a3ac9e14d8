// Package execx provides a small abstraction over running external
// commands so components that shell out to OS utilities (powercfg,
// ipconfig, powershell) can be tested with a fake runner and can honor
// dry-run mode.
package execx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// Runner executes external commands.
type Runner interface {
	// Run executes a command and waits for it to exit, discarding output.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its combined standard output.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// New returns a Runner that executes real commands. On Windows the
// spawned console window is hidden.
func New() Runner {
	return &execRunner{}
}

type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = sysProcAttr()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func (r *execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = sysProcAttr()
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return string(out), nil
}

// DryRun wraps a Runner so state-changing commands are logged instead
// of executed. Read-only queries (Output) still run so the pipeline can
// report what it would have done.
func DryRun(next Runner) Runner {
	return &dryRunner{next: next, logger: logging.Get("execx")}
}

type dryRunner struct {
	next   Runner
	logger *logging.Logger
}

func (r *dryRunner) Run(_ context.Context, name string, args ...string) error {
	r.logger.Info("dry-run: skipping command", "cmd", name+" "+strings.Join(args, " "))
	return nil
}

func (r *dryRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	return r.next.Output(ctx, name, args...)
}
