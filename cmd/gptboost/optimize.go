package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/browser"
	"github.com/jamesainslie/gptboost/pkg/boost/config"
	"github.com/jamesainslie/gptboost/pkg/boost/elevate"
	"github.com/jamesainslie/gptboost/pkg/boost/execx"
	"github.com/jamesainslie/gptboost/pkg/boost/monitor"
	"github.com/jamesainslie/gptboost/pkg/boost/netflush"
	"github.com/jamesainslie/gptboost/pkg/boost/power"
	"github.com/jamesainslie/gptboost/pkg/boost/proc"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
	"github.com/jamesainslie/gptboost/pkg/boost/winupdate"
)

// runOptimize executes the full optimization pipeline. Individual step
// failures are recorded in the report and the run continues; only setup
// failures (config, invalid flags) abort.
func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	dryRun := viper.GetBool("dry_run")

	skip, err := parseSkipSteps(viper.GetStringSlice("skip"))
	if err != nil {
		return err
	}

	selectedBrowser, err := resolveBrowser()
	if err != nil {
		return err
	}

	elevated := ensureElevated(dryRun)

	// Interrupts stop the current step and skip the rest of the run.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	report := &types.RunReport{
		Operation: "optimize",
		Browser:   selectedBrowser,
		DryRun:    dryRun,
		Elevated:  elevated,
	}

	go func() {
		<-sigChan
		printInfo("\nInterrupted, stopping...")
		report.Interrupted = true
		cancel()
	}()

	runner := execx.New()
	if dryRun {
		runner = execx.DryRun(runner)
	}

	start := time.Now()

	runPowerStep(ctx, cfg, runner, skip, report)
	runProcessesStep(ctx, cfg, dryRun, skip, report)
	runCacheStep(ctx, dryRun, selectedBrowser, skip, report)
	runDNSStep(ctx, runner, skip, report)
	runUpdatesStep(ctx, cfg, runner, skip, report)
	runMonitorStep(ctx, report, skip)

	report.Elapsed = time.Since(start)

	recordRun(cfg, report)

	if err := renderReport(report); err != nil {
		return err
	}

	if !report.Interrupted {
		printInfo("\nGPTboost completed. You can now test your browser's responsiveness.")
	}
	return nil
}

// ensureElevated checks privileges and, when requested, relaunches the
// process elevated. Returns whether the current process is elevated.
// Dry-run never prompts: previewing needs no privileges.
func ensureElevated(dryRun bool) bool {
	if elevate.IsElevated() {
		return true
	}
	if dryRun {
		return false
	}

	printInfo("GPTboost requires administrator privileges for full functionality.")
	if viper.GetBool("admin") || promptYesNo("Restart as administrator? (y/n): ") {
		if err := elevate.Relaunch(); err != nil {
			printError("Failed to restart as administrator: %v", err)
		} else {
			// The elevated instance takes over.
			os.Exit(0)
		}
	}

	printInfo("Running with limited functionality...")
	return false
}

// runStep executes fn, timing it and recording the outcome in the
// report. A cancelled context records the step as skipped.
func runStep(ctx context.Context, report *types.RunReport, name string, skip map[string]bool, fn func() types.StepResult) {
	if skip[name] {
		report.AddStep(types.StepResult{Name: name, Status: types.StatusSkipped, Detail: "skipped by --skip"})
		return
	}
	if ctx.Err() != nil {
		report.AddStep(types.StepResult{Name: name, Status: types.StatusSkipped, Detail: "run interrupted"})
		return
	}

	start := time.Now()
	result := fn()
	result.Name = name
	result.Elapsed = time.Since(start)
	report.AddStep(result)
}

func runPowerStep(ctx context.Context, cfg *config.Config, runner execx.Runner, skip map[string]bool, report *types.RunReport) {
	runStep(ctx, report, types.StepPower, skip, func() types.StepResult {
		backupPath := cfg.Power.BackupPath
		if backupPath == "" {
			backupPath = config.DefaultBackupPath()
		}

		mgr := power.NewManager(power.Options{
			Runner:      runner,
			Store:       power.NewStore(backupPath),
			SchemeLabel: cfg.Power.SchemeLabel,
			DryRun:      report.DryRun,
		})

		prev, err := mgr.SaveAndSwitch(ctx)
		if err != nil {
			report.Warnf("power scheme switch failed: %v", err)
			return types.StepResult{Status: types.StatusFailed, Detail: err.Error()}
		}

		detail := fmt.Sprintf("switched to %s", cfg.Power.SchemeLabel)
		if report.DryRun {
			detail = fmt.Sprintf("would switch to %s", cfg.Power.SchemeLabel)
		}
		report.PreviousScheme = prev
		return types.StepResult{
			Status: types.StatusOK,
			Detail: detail,
			Items:  1,
		}
	})
}

func runProcessesStep(ctx context.Context, cfg *config.Config, dryRun bool, skip map[string]bool, report *types.RunReport) {
	runStep(ctx, report, types.StepProcesses, skip, func() types.StepResult {
		closer := proc.NewCloser(proc.Options{
			Names:         cfg.Processes.Close,
			TerminateWait: time.Duration(cfg.Processes.TerminateWait) * time.Second,
			DryRun:        dryRun,
		})

		closed, err := closer.CloseAll(ctx)
		if err != nil {
			report.Warnf("process enumeration failed: %v", err)
			return types.StepResult{Status: types.StatusFailed, Detail: err.Error()}
		}

		detail := fmt.Sprintf("closed %d processes", len(closed))
		if dryRun {
			detail = fmt.Sprintf("would close %d processes", len(closed))
		}
		return types.StepResult{Status: types.StatusOK, Detail: detail, Items: len(closed)}
	})
}

func runCacheStep(ctx context.Context, dryRun bool, b types.Browser, skip map[string]bool, report *types.RunReport) {
	runStep(ctx, report, types.StepCache, skip, func() types.StepResult {
		cleaner := browser.NewCleaner(browser.CleanerOptions{DryRun: dryRun})

		result, err := cleaner.Clear(ctx, b)
		if err != nil {
			report.Warnf("cache clearing failed: %v", err)
			return types.StepResult{Status: types.StatusFailed, Detail: err.Error()}
		}

		detail := fmt.Sprintf("cleared %d cache directories", result.Dirs)
		if dryRun {
			detail = fmt.Sprintf("would clear %d cache directories", result.Dirs)
		}
		if result.Dirs == 0 {
			detail = "no cache directories found"
		}
		return types.StepResult{Status: types.StatusOK, Detail: detail, Items: result.Dirs, Bytes: result.Bytes}
	})
}

func runDNSStep(ctx context.Context, runner execx.Runner, skip map[string]bool, report *types.RunReport) {
	runStep(ctx, report, types.StepDNS, skip, func() types.StepResult {
		flusher := netflush.NewFlusher(netflush.Options{Runner: runner})

		if err := flusher.FlushDNS(ctx); err != nil {
			report.Warnf("DNS flush failed: %v", err)
			return types.StepResult{Status: types.StatusFailed, Detail: err.Error()}
		}
		return types.StepResult{Status: types.StatusOK, Detail: "DNS resolver cache flushed"}
	})
}

func runUpdatesStep(ctx context.Context, cfg *config.Config, runner execx.Runner, skip map[string]bool, report *types.RunReport) {
	runStep(ctx, report, types.StepUpdates, skip, func() types.StepResult {
		if !cfg.CheckUpdates {
			return types.StepResult{Status: types.StatusSkipped, Detail: "disabled in config"}
		}

		checker := winupdate.NewChecker(winupdate.Options{Runner: runner})
		switch checker.Check(ctx) {
		case winupdate.StatusNone:
			return types.StepResult{Status: types.StatusOK, Detail: "no pending updates"}
		case winupdate.StatusAvailable:
			return types.StepResult{Status: types.StatusWarning, Detail: "updates pending, consider installing them"}
		default:
			return types.StepResult{Status: types.StatusWarning, Detail: "update state unknown"}
		}
	})
}

func runMonitorStep(ctx context.Context, report *types.RunReport, skip map[string]bool) {
	duration := time.Duration(viper.GetInt("monitor.duration")) * time.Second
	if duration <= 0 {
		report.AddStep(types.StepResult{Name: types.StepMonitor, Status: types.StatusSkipped, Detail: "duration is zero"})
		return
	}

	runStep(ctx, report, types.StepMonitor, skip, func() types.StepResult {
		var onReading func(monitor.Reading)
		if !getQuiet() {
			onReading = func(r monitor.Reading) {
				fmt.Printf("\rCPU: %5.1f%% | RAM: %5.1f%%", r.CPU, r.Memory)
			}
		}

		m := monitor.New(monitor.Options{OnReading: onReading})
		summary, err := m.Run(ctx, duration)
		if !getQuiet() && summary.Samples > 0 {
			fmt.Println()
		}
		if err != nil {
			report.Warnf("resource monitoring failed: %v", err)
			return types.StepResult{Status: types.StatusFailed, Detail: err.Error()}
		}

		report.Monitor = &summary
		return types.StepResult{
			Status: types.StatusOK,
			Detail: fmt.Sprintf("avg CPU %.1f%%, avg RAM %.1f%%", summary.AvgCPU, summary.AvgMemory),
			Items:  summary.Samples,
		}
	})
}
