package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/gptboost/pkg/boost/config"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// initializeLogging is the PersistentPreRunE hook. It ensures the
// application directories exist and wires the logging system from the
// loaded configuration before any command runs.
func initializeLogging(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       cfg.Logging.Path,
		Rotation:   parseRotationConfig(cfg.Logging.Rotation),
		Components: cfg.Logging.Components,
	}
	if logCfg.Level == "" {
		logCfg.Level = "info"
	}
	if viper.GetBool("verbose") {
		logCfg.Level = "debug"
		logCfg.Components = nil
		logCfg.ConsoleLevel = "debug"
	}

	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	return nil
}

// parseRotationConfig converts the config representation of rotation
// settings (human-readable size strings) into the logging package's
// numeric form. Invalid or empty sizes fall back to the default.
func parseRotationConfig(cfg config.RotationConfig) logging.RotationConfig {
	out := logging.RotationConfig{
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Daily:      cfg.Daily,
	}

	out.MaxSize = logging.DefaultRotationConfig().MaxSize
	if cfg.MaxSize != "" {
		if size, err := types.ParseSize(cfg.MaxSize); err == nil {
			out.MaxSize = size
		}
	}

	return out
}
