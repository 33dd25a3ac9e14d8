package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// PowerConfig configures the power-scheme switch.
type PowerConfig struct {
	// SchemeLabel is the label of the scheme to activate during a run.
	SchemeLabel string `mapstructure:"scheme_label"`
	// BackupPath is where the previous scheme GUID is persisted.
	// Empty means use the default under the user data directory.
	BackupPath string `mapstructure:"backup_path"`
}

// ProcessesConfig configures background process closing.
type ProcessesConfig struct {
	// Close lists process image names terminated during a run.
	Close []string `mapstructure:"close"`
	// TerminateWait is how long in seconds to wait for a graceful exit
	// before force killing.
	TerminateWait int `mapstructure:"terminate_wait"`
}

// HistoryConfig configures run history retention.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Config represents the application configuration.
type Config struct {
	Browser      string `mapstructure:"browser"`
	Output       string `mapstructure:"output"`
	CheckUpdates bool   `mapstructure:"check_updates"`
	Monitor      struct {
		Duration int `mapstructure:"duration"`
	} `mapstructure:"monitor"`
	Processes ProcessesConfig `mapstructure:"processes"`
	Power     PowerConfig     `mapstructure:"power"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/gptboost/config.yaml
//   - $HOME/.config/gptboost/config.yaml
//
// Environment variables are prefixed with GPTBOOST_ (e.g. GPTBOOST_BROWSER).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "gptboost"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "gptboost"))

	v.SetEnvPrefix("GPTBOOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, homeDir)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.History.Path, "~") {
		cfg.History.Path = filepath.Join(homeDir, cfg.History.Path[1:])
	}
	if strings.HasPrefix(cfg.Power.BackupPath, "~") {
		cfg.Power.BackupPath = filepath.Join(homeDir, cfg.Power.BackupPath[1:])
	}

	return &cfg, nil
}

// setDefaults registers all configuration defaults on the given viper.
func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault("browser", "")
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("check_updates", true)
	v.SetDefault("monitor.duration", DefaultMonitorDuration)
	v.SetDefault("processes.close", DefaultProcesses)
	v.SetDefault("processes.terminate_wait", DefaultTerminateWait)
	v.SetDefault("power.scheme_label", DefaultPowerSchemeLabel)
	v.SetDefault("power.backup_path", "") // empty means DefaultBackupPath
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(homeDir, ".config", "gptboost", ".history"))
	v.SetDefault("history.retention_days", DefaultRetentionDays)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // empty means use DefaultLogPath
	v.SetDefault("logging.rotation.max_size", "10MB")
	v.SetDefault("logging.rotation.max_age", 30)
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.rotation.daily", true)
	v.SetDefault("logging.components", map[string]string{
		"power":   "info",
		"proc":    "info",
		"browser": "info",
		"monitor": "warn",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "gptboost"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "gptboost"), nil
}

// HistoryDir returns the run history directory path.
func HistoryDir() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, ".history"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	historyDir, err := HistoryDir()
	if err != nil {
		return err
	}

	processes := "  - " + strings.Join(DefaultProcesses, "\n  - ")

	defaultConfig := fmt.Sprintf(`# GPTboost Configuration

# Browser whose cache is cleared (edge, chrome, firefox, librewolf).
# Empty means detect the default browser from the registry.
browser: ""

# Run report format: pretty, plain, json
output: %s

# Probe for pending Windows updates during a run
check_updates: true

# Resource monitoring after an optimization run
monitor:
  duration: %d   # seconds

# Background processes closed during a run
processes:
  terminate_wait: %d   # seconds before force kill
  close:
%s

# Power scheme switching
power:
  # Label of the scheme activated during a run
  scheme_label: %s
  # Where the previous scheme GUID is saved (empty means default)
  backup_path: ""

# Run history
history:
  enabled: true
  path: %s
  retention_days: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means default under the state directory)
  path: ""
  rotation:
    max_size: 10MB
    max_age: 30       # days
    max_backups: 5
    daily: true
  # Per-component log levels
  components:
    power: info
    proc: info
    browser: info
    monitor: warn
`, DefaultOutput, DefaultMonitorDuration, DefaultTerminateWait, processes,
		DefaultPowerSchemeLabel, historyDir, DefaultRetentionDays)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// DataDir returns the per-user data directory for the power backup file.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "gptboost")
}

// StateDir returns the per-user state directory for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "gptboost")
}

// DefaultBackupPath returns the default power-scheme backup file path.
func DefaultBackupPath() string {
	return filepath.Join(DataDir(), "power_backup.json")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "gptboost.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
