package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
	"github.com/jamesainslie/gptboost/pkg/boost/manifest"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View run history",
	Long: `View the history of optimization and undo runs.

Each run is recorded with its steps, the power scheme it replaced, and
how much browser cache it cleared.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show details of a specific run",
	Long:  `Display detailed information about a specific run by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up old history entries",
	Long:  `Remove history entries older than the retention period.`,
	RunE:  runHistoryClean,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// getManifest returns a manifest instance with the configured directory.
func getManifest() (*manifest.Manifest, error) {
	cfg, err := config.Load()
	if err == nil && cfg.History.Path != "" {
		return manifest.New(cfg.History.Path)
	}

	historyDir, dirErr := config.HistoryDir()
	if dirErr != nil {
		return nil, fmt.Errorf("failed to get history directory: %w", dirErr)
	}
	return manifest.New(historyDir)
}

// runHistory lists recent runs.
func runHistory(cmd *cobra.Command, args []string) error {
	m, err := getManifest()
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	entries, err := m.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		printInfo("No history entries found.")
		printInfo("Run 'gptboost' to optimize the system.")
		return nil
	}

	fmt.Printf("\n%-44s  %-10s  %-7s  %-10s\n", "ID", "TYPE", "STEPS", "FREED")
	fmt.Println(strings.Repeat("-", 80))

	for _, entry := range entries {
		fmt.Printf("%-44s  %-10s  %-7d  %-10s\n",
			truncateString(entry.ID, 44),
			entry.Operation,
			len(entry.Steps),
			types.FormatSize(entry.Summary.BytesFreed),
		)
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("\nShowing %d entries. Use --limit to see more.\n", len(entries))
	fmt.Println("Use 'gptboost history show <id>' for details on a specific entry.")

	return nil
}

// runHistoryShow displays details of a specific run.
func runHistoryShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	m, err := getManifest()
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	entry, err := m.Get(id)
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	fmt.Println("\nRun Details")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("ID:          %s\n", entry.ID)
	fmt.Printf("Timestamp:   %s\n", entry.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Operation:   %s\n", entry.Operation)
	if entry.Summary.Browser != "" {
		fmt.Printf("Browser:     %s\n", entry.Summary.Browser)
	}
	if entry.Summary.PreviousScheme != "" {
		fmt.Printf("Prev scheme: %s\n", entry.Summary.PreviousScheme)
	}
	fmt.Printf("Freed:       %s\n", types.FormatSize(entry.Summary.BytesFreed))
	fmt.Printf("Elapsed:     %s\n", entry.Summary.Elapsed)

	if len(entry.Steps) > 0 {
		fmt.Println("\nSteps:")
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-12s  %-8s  %s\n", "STEP", "STATUS", "DETAIL")
		fmt.Println(strings.Repeat("-", 60))

		for _, step := range entry.Steps {
			fmt.Printf("%-12s  %-8s  %s\n", step.Name, step.Status, step.Detail)
		}
	}

	return nil
}

// runHistoryClean removes old history entries.
func runHistoryClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := getManifest()
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	retentionDays := cfg.History.RetentionDays
	if retentionDays <= 0 {
		retentionDays = config.DefaultRetentionDays
	}

	printInfo("Cleaning history entries older than %d days...", retentionDays)

	if err := m.Cleanup(retentionDays); err != nil {
		return fmt.Errorf("failed to clean history: %w", err)
	}

	printInfo("History cleanup complete.")
	return nil
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
