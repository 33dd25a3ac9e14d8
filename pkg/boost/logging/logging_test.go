package logging_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// TestInit tests the Init function with various configurations.
// Note: these tests modify global state and cannot run in parallel.
func TestInit(t *testing.T) {
	validDir := t.TempDir()
	debugDir := t.TempDir()
	componentsDir := t.TempDir()
	invalidDir := t.TempDir()

	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr bool
	}{
		{
			name: "valid config with defaults",
			cfg: logging.Config{
				Level: "info",
				Path:  filepath.Join(validDir, "test.log"),
			},
			wantErr: false,
		},
		{
			name: "valid config with debug level",
			cfg: logging.Config{
				Level: "debug",
				Path:  filepath.Join(debugDir, "debug.log"),
			},
			wantErr: false,
		},
		{
			name: "valid config with component overrides",
			cfg: logging.Config{
				Level: "info",
				Path:  filepath.Join(componentsDir, "components.log"),
				Components: map[string]string{
					"power": "debug",
					"proc":  "warn",
				},
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			cfg: logging.Config{
				Level: "invalid",
				Path:  filepath.Join(invalidDir, "invalid.log"),
			},
			wantErr: true,
		},
		{
			name: "invalid component level",
			cfg: logging.Config{
				Level:      "info",
				Path:       filepath.Join(invalidDir, "comp.log"),
				Components: map[string]string{"power": "loud"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logging.Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if err == nil {
				if closeErr := logging.Close(); closeErr != nil {
					t.Errorf("Close() error = %v", closeErr)
				}
			}
		})
	}
}

func TestGetWritesToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "test.log")

	cfg := logging.Config{
		Level: "info",
		Path:  logPath,
	}
	if err := logging.Init(cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	logger := logging.Get("power")
	logger.Info("scheme saved", "guid", "381b4222-f694-41f0-9685-ff5bb260df2e")

	if err := logging.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "scheme saved") {
		t.Errorf("log file missing message, got: %q", content)
	}
	if !strings.Contains(content, "381b4222") {
		t.Errorf("log file missing structured field, got: %q", content)
	}
}

func TestGetBeforeInitIsSilent(t *testing.T) {
	// Loggers handed out before Init must not panic or write anywhere.
	logger := logging.Get("preinit")
	logger.Info("this message goes nowhere")
	logger.Error("neither does this")
}

func TestGetReturnsSameLogger(t *testing.T) {
	a := logging.Get("same")
	b := logging.Get("same")
	if a != b {
		t.Error("Get() should return the cached logger for a component")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{input: "debug", want: logging.LevelDebug},
		{input: "INFO", want: logging.LevelInfo},
		{input: "warn", want: logging.LevelWarn},
		{input: "warning", want: logging.LevelWarn},
		{input: "error", want: logging.LevelError},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, logging.ErrInvalidLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if logging.LevelDebug.String() != "debug" || logging.LevelError.String() != "error" {
		t.Error("Level.String() returned unexpected value")
	}
}
