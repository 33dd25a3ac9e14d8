package browser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// writeFile creates a file with content of the given size, creating
// parent directories as needed.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestCachePaths(t *testing.T) {
	root := filepath.Join("C:", "Users", "u", "AppData", "Local")

	tests := []struct {
		name       string
		browser    types.Browser
		wantDirs   int
		wantSub    string
		perProfile bool
	}{
		{name: "chrome", browser: types.BrowserChrome, wantDirs: 2, wantSub: "Chrome"},
		{name: "edge", browser: types.BrowserEdge, wantDirs: 2, wantSub: "Edge"},
		{name: "firefox", browser: types.BrowserFirefox, wantDirs: 1, wantSub: "Firefox", perProfile: true},
		{name: "librewolf", browser: types.BrowserLibreWolf, wantDirs: 1, wantSub: "LibreWolf", perProfile: true},
		{name: "unknown falls back to edge", browser: types.Browser("opera"), wantDirs: 2, wantSub: "Edge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := CachePaths(tt.browser, root)
			require.Len(t, dirs, tt.wantDirs)
			assert.Contains(t, dirs[0].Path, tt.wantSub)
			assert.Equal(t, tt.perProfile, dirs[0].PerProfile)
		})
	}
}

func TestClear_Edge(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, "Microsoft", "Edge", "User Data", "Default", "Cache")
	codeCacheDir := filepath.Join(root, "Microsoft", "Edge", "User Data", "Default", "Code Cache")
	writeFile(t, filepath.Join(cacheDir, "f_000001"), 1000)
	writeFile(t, filepath.Join(cacheDir, "f_000002"), 500)
	writeFile(t, filepath.Join(codeCacheDir, "js", "index"), 250)

	cleaner := NewCleaner(CleanerOptions{LocalAppData: root})

	result, err := cleaner.Clear(context.Background(), types.BrowserEdge)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Dirs)
	assert.Equal(t, int64(1750), result.Bytes)

	_, err = os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(err), "cache dir should be removed")
	_, err = os.Stat(codeCacheDir)
	assert.True(t, os.IsNotExist(err), "code cache dir should be removed")
}

func TestClear_FirefoxProfiles(t *testing.T) {
	root := t.TempDir()
	profiles := filepath.Join(root, "Mozilla", "Firefox", "Profiles")
	writeFile(t, filepath.Join(profiles, "abc123.default", "cache2", "entries", "x"), 100)
	writeFile(t, filepath.Join(profiles, "def456.work", "cache2", "entries", "y"), 200)
	// Profile without a cache2 dir is skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(profiles, "empty.profile"), 0o755))
	// Profile metadata must survive.
	writeFile(t, filepath.Join(profiles, "abc123.default", "prefs.js"), 50)

	cleaner := NewCleaner(CleanerOptions{LocalAppData: root})

	result, err := cleaner.Clear(context.Background(), types.BrowserFirefox)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Dirs)
	assert.Equal(t, int64(300), result.Bytes)

	_, err = os.Stat(filepath.Join(profiles, "abc123.default", "cache2"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(profiles, "abc123.default", "prefs.js"))
	assert.NoError(t, err, "profile files outside cache2 must be untouched")
}

func TestClear_MissingDirsAreSkipped(t *testing.T) {
	cleaner := NewCleaner(CleanerOptions{LocalAppData: t.TempDir()})

	result, err := cleaner.Clear(context.Background(), types.BrowserChrome)
	require.NoError(t, err)
	assert.Zero(t, result.Dirs)
	assert.Zero(t, result.Bytes)
}

func TestClear_DryRun(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, "Microsoft", "Edge", "User Data", "Default", "Cache")
	writeFile(t, filepath.Join(cacheDir, "f_000001"), 1000)

	cleaner := NewCleaner(CleanerOptions{LocalAppData: root, DryRun: true})

	result, err := cleaner.Clear(context.Background(), types.BrowserEdge)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Dirs)
	assert.Equal(t, int64(1000), result.Bytes)

	_, err = os.Stat(cacheDir)
	assert.NoError(t, err, "dry-run must not delete")
}

func TestClear_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cleaner := NewCleaner(CleanerOptions{LocalAppData: t.TempDir()})

	_, err := cleaner.Clear(ctx, types.BrowserEdge)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBrowserFromProgID(t *testing.T) {
	tests := []struct {
		progID string
		want   types.Browser
	}{
		{progID: "ChromeHTML", want: types.BrowserChrome},
		{progID: "FirefoxURL-308046B0AF4A39CB", want: types.BrowserFirefox},
		{progID: "LibreWolfURL", want: types.BrowserLibreWolf},
		{progID: "MSEdgeHTM", want: types.BrowserEdge},
		{progID: "AppXq0fevzme2pys62n3e0fbqa7peapykr8v", want: types.BrowserEdge},
	}

	for _, tt := range tests {
		t.Run(tt.progID, func(t *testing.T) {
			assert.Equal(t, tt.want, browserFromProgID(tt.progID))
		})
	}
}
