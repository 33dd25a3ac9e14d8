package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Use a temp directory that doesn't have a config file
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Browser != "" {
		t.Errorf("Browser = %q, want empty (detect)", cfg.Browser)
	}

	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}

	if cfg.Monitor.Duration != DefaultMonitorDuration {
		t.Errorf("Monitor.Duration = %d, want %d", cfg.Monitor.Duration, DefaultMonitorDuration)
	}

	if cfg.Processes.TerminateWait != DefaultTerminateWait {
		t.Errorf("Processes.TerminateWait = %d, want %d", cfg.Processes.TerminateWait, DefaultTerminateWait)
	}

	if len(cfg.Processes.Close) != len(DefaultProcesses) {
		t.Errorf("len(Processes.Close) = %d, want %d", len(cfg.Processes.Close), len(DefaultProcesses))
	}

	if cfg.Power.SchemeLabel != DefaultPowerSchemeLabel {
		t.Errorf("Power.SchemeLabel = %q, want %q", cfg.Power.SchemeLabel, DefaultPowerSchemeLabel)
	}

	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}

	if cfg.History.RetentionDays != DefaultRetentionDays {
		t.Errorf("History.RetentionDays = %d, want %d", cfg.History.RetentionDays, DefaultRetentionDays)
	}

	if !cfg.CheckUpdates {
		t.Error("CheckUpdates = false, want true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "gptboost")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
browser: firefox
output: json
check_updates: false
monitor:
  duration: 10
processes:
  terminate_wait: 5
  close:
    - OneDrive.exe
    - Teams.exe
power:
  scheme_label: Ultimate Performance
  backup_path: /custom/backup.json
history:
  enabled: false
  path: /custom/history
  retention_days: 7
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Browser != "firefox" {
		t.Errorf("Browser = %q, want %q", cfg.Browser, "firefox")
	}

	if cfg.Output != "json" {
		t.Errorf("Output = %q, want %q", cfg.Output, "json")
	}

	if cfg.CheckUpdates {
		t.Error("CheckUpdates = true, want false")
	}

	if cfg.Monitor.Duration != 10 {
		t.Errorf("Monitor.Duration = %d, want 10", cfg.Monitor.Duration)
	}

	if cfg.Processes.TerminateWait != 5 {
		t.Errorf("Processes.TerminateWait = %d, want 5", cfg.Processes.TerminateWait)
	}

	if len(cfg.Processes.Close) != 2 {
		t.Errorf("len(Processes.Close) = %d, want 2", len(cfg.Processes.Close))
	}

	if cfg.Power.SchemeLabel != "Ultimate Performance" {
		t.Errorf("Power.SchemeLabel = %q, want %q", cfg.Power.SchemeLabel, "Ultimate Performance")
	}

	if cfg.Power.BackupPath != "/custom/backup.json" {
		t.Errorf("Power.BackupPath = %q, want %q", cfg.Power.BackupPath, "/custom/backup.json")
	}

	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}

	if cfg.History.RetentionDays != 7 {
		t.Errorf("History.RetentionDays = %d, want 7", cfg.History.RetentionDays)
	}
}

func TestLoad_TildeExpansion(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "gptboost")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
power:
  backup_path: ~/backups/power.json
history:
  path: ~/history
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !strings.HasPrefix(cfg.Power.BackupPath, tempDir) {
		t.Errorf("Power.BackupPath = %q, want prefix %q", cfg.Power.BackupPath, tempDir)
	}

	if !strings.HasPrefix(cfg.History.Path, tempDir) {
		t.Errorf("History.Path = %q, want prefix %q", cfg.History.Path, tempDir)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}

	want := filepath.Join("/custom/xdg", "gptboost")
	if dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestWriteDefault(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg"))

	if err := WriteDefault(); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	configPath := filepath.Join(tempDir, "xdg", "gptboost", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading default config: %v", err)
	}

	content := string(data)
	for _, want := range []string{"browser:", "scheme_label:", "OneDrive.exe", "monitor:"} {
		if !strings.Contains(content, want) {
			t.Errorf("default config missing %q", want)
		}
	}

	// Second call must not fail or overwrite.
	if err := WriteDefault(); err != nil {
		t.Errorf("WriteDefault() second call error = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no tilde", input: "/absolute/path", want: "/absolute/path"},
		{name: "tilde prefix", input: "~/data", want: filepath.Join(tempDir, "data")},
		{name: "bare tilde", input: "~", want: tempDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
