package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage gptboost configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/gptboost/config.yaml (if set)
  2. ~/.config/gptboost/config.yaml

Environment variables can override config file settings using the GPTBOOST_ prefix:
  GPTBOOST_BROWSER=chrome
  GPTBOOST_MONITOR_DURATION=60
  GPTBOOST_POWER_SCHEME_LABEL="Ultimate Performance"`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'notepad' on Windows, 'vi' elsewhere

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		printError("Failed to load configuration: %v", err)
		cfg = &config.Config{
			Output:       config.DefaultOutput,
			CheckUpdates: true,
			Processes: config.ProcessesConfig{
				Close:         config.DefaultProcesses,
				TerminateWait: config.DefaultTerminateWait,
			},
			Power: config.PowerConfig{SchemeLabel: config.DefaultPowerSchemeLabel},
		}
		cfg.Monitor.Duration = config.DefaultMonitorDuration
		cfg.History.Enabled = true
		cfg.History.RetentionDays = config.DefaultRetentionDays
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Printf("Config file: %s\n\n", configFile)
	} else {
		fmt.Println("Config file: (using defaults, no file found)")
		fmt.Println()
	}

	browserValue := cfg.Browser
	if browserValue == "" {
		browserValue = "(auto-detect)"
	}

	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("browser:                  %s\n", browserValue)
	fmt.Printf("output:                   %s\n", cfg.Output)
	fmt.Printf("check_updates:            %t\n", cfg.CheckUpdates)
	fmt.Printf("monitor.duration:         %d seconds\n", cfg.Monitor.Duration)
	fmt.Printf("processes.terminate_wait: %d seconds\n", cfg.Processes.TerminateWait)
	fmt.Printf("processes.close:          %s\n", strings.Join(cfg.Processes.Close, ", "))
	fmt.Printf("power.scheme_label:       %s\n", cfg.Power.SchemeLabel)
	fmt.Printf("power.backup_path:        %s\n", backupPathOrDefault(cfg))
	fmt.Printf("history.enabled:          %t\n", cfg.History.Enabled)
	fmt.Printf("history.path:             %s\n", cfg.History.Path)
	fmt.Printf("history.retention:        %d days\n", cfg.History.RetentionDays)
	fmt.Printf("logging.level:            %s\n", cfg.Logging.Level)

	fmt.Println("\nEnvironment Overrides:")
	fmt.Println("----------------------")
	envVars := []string{
		"GPTBOOST_BROWSER",
		"GPTBOOST_OUTPUT",
		"GPTBOOST_CHECK_UPDATES",
		"GPTBOOST_MONITOR_DURATION",
		"GPTBOOST_PROCESSES_TERMINATE_WAIT",
		"GPTBOOST_POWER_SCHEME_LABEL",
		"GPTBOOST_POWER_BACKUP_PATH",
		"GPTBOOST_HISTORY_ENABLED",
		"GPTBOOST_HISTORY_RETENTION_DAYS",
		"GPTBOOST_LOGGING_LEVEL",
	}

	anyOverrides := false
	for _, name := range envVars {
		if val := os.Getenv(name); val != "" {
			fmt.Printf("%s=%s\n", name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Println("(none)")
	}

	return nil
}

// defaultEditor returns the fallback editor for the platform.
func defaultEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// backupPathOrDefault resolves the effective power backup path.
func backupPathOrDefault(cfg *config.Config) string {
	if cfg.Power.BackupPath != "" {
		return cfg.Power.BackupPath
	}
	return config.DefaultBackupPath()
}

// runConfigEdit opens the config file in an editor.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = defaultEditor()
	}

	printVerbose("Opening %s with %s", configPath, editor)

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		printInfo("Config file already exists: %s", configPath)
		printInfo("Use 'gptboost config edit' to modify it.")
		return nil
	}

	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	printInfo("Created default config file: %s", configPath)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	fmt.Println(configPath)

	if _, err := os.Stat(configPath); err == nil {
		printVerbose("File exists")
	} else if os.IsNotExist(err) {
		printVerbose("File does not exist (will use defaults)")
	}

	return nil
}
