package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
	"github.com/jamesainslie/gptboost/pkg/boost/execx"
	"github.com/jamesainslie/gptboost/pkg/boost/power"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// runUndo restores the power scheme that was active before the last
// optimization run.
func runUndo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	dryRun := viper.GetBool("dry_run")
	elevated := ensureElevated(dryRun)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	report := &types.RunReport{
		Operation: "undo",
		DryRun:    dryRun,
		Elevated:  elevated,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		report.Interrupted = true
		cancel()
	}()

	runner := execx.New()
	if dryRun {
		runner = execx.DryRun(runner)
	}

	start := time.Now()

	backupPath := cfg.Power.BackupPath
	if backupPath == "" {
		backupPath = config.DefaultBackupPath()
	}

	store := power.NewStore(backupPath)
	mgr := power.NewManager(power.Options{
		Runner:      runner,
		Store:       store,
		SchemeLabel: cfg.Power.SchemeLabel,
	})

	stepStart := time.Now()
	report.AddStep(restoreStep(ctx, mgr, store, dryRun, report, stepStart))

	report.Elapsed = time.Since(start)

	recordRun(cfg, report)

	return renderReport(report)
}

// restoreStep runs the power-scheme restore and classifies the outcome.
// A missing backup is a skip, an unreadable one a warning; only a failed
// powercfg activation is a failure.
func restoreStep(ctx context.Context, mgr *power.Manager, store *power.Store, dryRun bool, report *types.RunReport, start time.Time) types.StepResult {
	result := types.StepResult{Name: types.StepRestore}

	record, loadErr := store.Load()
	switch {
	case errors.Is(loadErr, power.ErrNoRecord):
		result.Status = types.StatusSkipped
		result.Detail = "no saved power scheme to restore"
	case loadErr != nil, record.PowerScheme == "":
		result.Status = types.StatusWarning
		result.Detail = "saved power scheme is unreadable, nothing restored"
		report.Warnf("power scheme backup at %s is unreadable", store.Path())
	default:
		if err := mgr.Restore(ctx); err != nil {
			result.Status = types.StatusFailed
			result.Detail = err.Error()
			report.Warnf("power scheme restore failed: %v", err)
		} else {
			report.PreviousScheme = record.PowerScheme
			result.Status = types.StatusOK
			result.Detail = fmt.Sprintf("restored power scheme %s", record.PowerScheme)
			if dryRun {
				result.Detail = fmt.Sprintf("would restore power scheme %s", record.PowerScheme)
			}
			result.Items = 1
		}
	}

	result.Elapsed = time.Since(start)
	return result
}
