//go:build !windows

package browser

import (
	"os"
	"path/filepath"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// Detect returns the default browser. Without a Windows registry to
// consult, this falls back to Edge, matching the Windows fallback.
func Detect() types.Browser {
	return types.BrowserEdge
}

// DefaultLocalAppData returns the local application data root. On
// non-Windows systems this only matters for tests, which override it.
func DefaultLocalAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "AppData", "Local")
}
