// Package browser detects the user's default browser and clears its
// cache directories.
package browser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
	"github.com/jamesainslie/gptboost/pkg/boost/types"
)

// CacheDir describes one cache location for a browser.
type CacheDir struct {
	// Path is the cache directory, or the profiles root when
	// PerProfile is set.
	Path string

	// PerProfile indicates Path holds per-profile subdirectories, each
	// with its own cache2 directory (Firefox family layout).
	PerProfile bool
}

// profileCacheName is the cache directory inside each Firefox-family
// profile.
const profileCacheName = "cache2"

// CachePaths returns the cache locations for a browser, rooted at the
// given local application data directory.
func CachePaths(b types.Browser, localAppData string) []CacheDir {
	switch b {
	case types.BrowserChrome:
		return []CacheDir{
			{Path: filepath.Join(localAppData, "Google", "Chrome", "User Data", "Default", "Cache")},
			{Path: filepath.Join(localAppData, "Google", "Chrome", "User Data", "Default", "Code Cache")},
		}
	case types.BrowserFirefox:
		return []CacheDir{
			{Path: filepath.Join(localAppData, "Mozilla", "Firefox", "Profiles"), PerProfile: true},
		}
	case types.BrowserLibreWolf:
		return []CacheDir{
			{Path: filepath.Join(localAppData, "LibreWolf", "Profiles"), PerProfile: true},
		}
	default:
		// Edge is the fallback for unknown values, mirroring detection.
		return []CacheDir{
			{Path: filepath.Join(localAppData, "Microsoft", "Edge", "User Data", "Default", "Cache")},
			{Path: filepath.Join(localAppData, "Microsoft", "Edge", "User Data", "Default", "Code Cache")},
		}
	}
}

// ClearResult summarizes a cache-clear operation.
type ClearResult struct {
	// Dirs is the number of cache directories removed (or, in dry-run,
	// that would be removed).
	Dirs int `json:"dirs"`

	// Bytes is the total size of the removed directories.
	Bytes int64 `json:"bytes"`
}

// CleanerOptions configures a Cleaner.
type CleanerOptions struct {
	// LocalAppData overrides the local application data root.
	// Empty means DefaultLocalAppData().
	LocalAppData string

	// DryRun measures cache sizes without deleting anything.
	DryRun bool

	// Logger is the component logger. Defaults to "browser".
	Logger *logging.Logger
}

// Cleaner clears browser cache directories.
type Cleaner struct {
	localAppData string
	dryRun       bool
	logger       *logging.Logger
}

// NewCleaner creates a Cleaner from the given options.
func NewCleaner(opts CleanerOptions) *Cleaner {
	localAppData := opts.LocalAppData
	if localAppData == "" {
		localAppData = DefaultLocalAppData()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("browser")
	}

	return &Cleaner{
		localAppData: localAppData,
		dryRun:       opts.DryRun,
		logger:       logger,
	}
}

// Clear removes the cache directories for the given browser and
// returns how many directories and bytes were cleared. Directories
// that do not exist are skipped silently; directories that cannot be
// removed are logged and skipped.
func (c *Cleaner) Clear(ctx context.Context, b types.Browser) (ClearResult, error) {
	var result ClearResult

	for _, dir := range CachePaths(b, c.localAppData) {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if dir.PerProfile {
			c.clearProfiles(ctx, dir.Path, &result)
			continue
		}

		c.clearDir(dir.Path, &result)
	}

	c.logger.Info("cleared browser cache", "browser", b, "dirs", result.Dirs,
		"bytes", result.Bytes, "dry_run", c.dryRun)
	return result, nil
}

// clearProfiles clears the cache2 directory inside each profile under
// the given profiles root.
func (c *Cleaner) clearProfiles(ctx context.Context, profilesRoot string, result *ClearResult) {
	entries, err := os.ReadDir(profilesRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("could not read profiles directory", "path", profilesRoot, "error", err)
		}
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if !entry.IsDir() {
			continue
		}
		c.clearDir(filepath.Join(profilesRoot, entry.Name(), profileCacheName), result)
	}
}

// clearDir measures and removes a single cache directory.
func (c *Cleaner) clearDir(path string, result *ClearResult) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	size := dirSize(path)

	if !c.dryRun {
		if err := os.RemoveAll(path); err != nil {
			c.logger.Warn("could not clear cache directory", "path", path, "error", err)
			return
		}
	}

	result.Dirs++
	result.Bytes += size
}

// dirSize walks a directory and sums regular file sizes. Walk errors
// are ignored; the size is best effort, used only for reporting.
// fastwalk invokes the callback from multiple goroutines, hence the
// atomic counter.
func dirSize(root string) int64 {
	var total atomic.Int64

	conf := fastwalk.Config{Follow: false}
	_ = fastwalk.Walk(&conf, root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total.Add(info.Size())
		return nil
	})

	return total.Load()
}
