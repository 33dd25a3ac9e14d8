package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
	"github.com/jamesainslie/gptboost/pkg/boost/manifest"
	"github.com/jamesainslie/gptboost/pkg/boost/output"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// renderReport formats the run report with the selected formatter and
// prints it. JSON output is printed even in quiet mode so the command
// stays scriptable.
func renderReport(report *types.RunReport) error {
	format := viper.GetString("output")
	if format == "" {
		format = config.DefaultOutput
	}

	if getQuiet() && format != "json" {
		return nil
	}

	formatter, err := output.Get(format)
	if err != nil {
		return fmt.Errorf("invalid --output: %w (valid: %v)", err, output.Available())
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	fmt.Print(buf.String())
	return nil
}

// recordRun appends the run to the history manifest. History failures
// never fail the run.
func recordRun(cfg *config.Config, report *types.RunReport) {
	if !cfg.History.Enabled || report.DryRun {
		return
	}

	logger := logging.Get("history")

	historyPath := cfg.History.Path
	if historyPath == "" {
		dir, err := config.HistoryDir()
		if err != nil {
			logger.Warn("could not resolve history directory", "error", err)
			return
		}
		historyPath = dir
	}

	m, err := manifest.New(historyPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	if err := m.EnsureDir(); err != nil {
		logger.Warn("could not create history directory", "error", err)
		return
	}

	log := m.LogOptimize
	if report.Operation == "undo" {
		log = m.LogUndo
	}
	if _, err := log(report); err != nil {
		logger.Warn("could not record run", "error", err)
	}

	if cfg.History.RetentionDays > 0 {
		if err := m.Cleanup(cfg.History.RetentionDays); err != nil {
			logger.Warn("history cleanup failed", "error", err)
		}
	}
}
