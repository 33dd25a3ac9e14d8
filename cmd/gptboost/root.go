package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "gptboost",
		Short: "Optimize Windows for a responsive browsing session",
		Long: `GPTboost frees up system resources before a heavy browser session:
it switches to the High Performance power scheme, closes non-essential
background processes, clears the browser cache, flushes the DNS resolver
cache, and then monitors CPU and RAM so you can see the effect.

The previous power scheme is saved and restored with --undo.

Examples:
  gptboost                         # Full optimization run
  gptboost --browser chrome        # Clear Chrome's cache instead of the default browser
  gptboost --monitor-duration 60   # Monitor resources for 60 seconds
  gptboost --dry-run               # Preview without changing anything
  gptboost --undo                  # Restore the previous power scheme
  gptboost config show             # Show configuration
  gptboost history                 # View run history`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initializeLogging,
		RunE:              runRoot,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/gptboost/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (pretty, plain, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	rootCmd.Flags().StringP("browser", "b", "", "browser for cache clearing (edge, chrome, firefox, librewolf)")
	rootCmd.Flags().Int("monitor-duration", 0, "resource monitoring duration in seconds (0 uses config default)")
	rootCmd.Flags().Bool("undo", false, "revert previous optimizations")
	rootCmd.Flags().Bool("admin", false, "relaunch as administrator without prompting")
	rootCmd.Flags().BoolP("dry-run", "d", false, "preview changes without applying them")
	rootCmd.Flags().StringSlice("skip", nil, "steps to skip (power, processes, cache, dns, updates, monitor)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("browser", rootCmd.Flags().Lookup("browser"))
	_ = viper.BindPFlag("monitor.duration", rootCmd.Flags().Lookup("monitor-duration"))
	_ = viper.BindPFlag("undo", rootCmd.Flags().Lookup("undo"))
	_ = viper.BindPFlag("admin", rootCmd.Flags().Lookup("admin"))
	_ = viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("skip", rootCmd.Flags().Lookup("skip"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "gptboost"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "gptboost"))
		}
	}

	viper.SetEnvPrefix("GPTBOOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("check_updates", true)
	viper.SetDefault("monitor.duration", config.DefaultMonitorDuration)
	viper.SetDefault("processes.close", config.DefaultProcesses)
	viper.SetDefault("processes.terminate_wait", config.DefaultTerminateWait)
	viper.SetDefault("power.scheme_label", config.DefaultPowerSchemeLabel)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.retention_days", config.DefaultRetentionDays)

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// runRoot dispatches to undo or optimize based on the --undo flag.
func runRoot(cmd *cobra.Command, args []string) error {
	if viper.GetBool("undo") {
		return runUndo(cmd, args)
	}
	return runOptimize(cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
