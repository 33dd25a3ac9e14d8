// Package power manages the Windows power scheme switch performed
// during an optimization run. It saves the previously active scheme
// GUID to a one-record backup file so a later undo can restore it.
package power

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamesainslie/gptboost/pkg/boost/execx"
	"github.com/jamesainslie/gptboost/pkg/boost/logging"
)

// Options configures a Manager. All fields are explicit; the manager
// holds no global state.
type Options struct {
	// Runner executes powercfg. Required.
	Runner execx.Runner

	// Store persists the previous scheme GUID. Required.
	Store *Store

	// SchemeLabel is the display label of the scheme to activate,
	// matched case-insensitively against `powercfg /list` output.
	SchemeLabel string

	// DryRun previews the switch without writing the backup file. The
	// runner seam already suppresses powercfg mutations, but the backup
	// write is a direct filesystem mutation and must be skipped here.
	DryRun bool

	// Logger is the component logger. Defaults to the "power" component.
	Logger *logging.Logger
}

// Manager performs the power-scheme save/switch/restore sequence.
type Manager struct {
	runner execx.Runner
	store  *Store
	label  string
	dryRun bool
	logger *logging.Logger
}

// NewManager creates a Manager from the given options.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Get("power")
	}
	return &Manager{
		runner: opts.Runner,
		store:  opts.Store,
		label:  opts.SchemeLabel,
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// ActiveScheme returns the GUID of the currently active power scheme.
func (m *Manager) ActiveScheme(ctx context.Context) (string, error) {
	out, err := m.runner.Output(ctx, "powercfg", "/getactivescheme")
	if err != nil {
		return "", fmt.Errorf("querying active scheme: %w", err)
	}
	return ParseActiveScheme(out)
}

// Schemes returns all power schemes known to the OS.
func (m *Manager) Schemes(ctx context.Context) ([]Scheme, error) {
	out, err := m.runner.Output(ctx, "powercfg", "/list")
	if err != nil {
		return nil, fmt.Errorf("listing schemes: %w", err)
	}
	return ParseSchemes(out), nil
}

// SaveAndSwitch saves the active scheme GUID to the backup file, then
// activates the scheme matching the configured label. When no matching
// scheme exists the current scheme stays active, a warning is logged,
// and the previously active GUID is still returned. Activation and
// enumeration failures are warnings, never fatal. In dry-run mode an
// existing backup file is left untouched.
//
// The returned GUID is empty only when the active scheme could not be
// determined at all.
func (m *Manager) SaveAndSwitch(ctx context.Context) (string, error) {
	prev, err := m.ActiveScheme(ctx)
	if err != nil {
		return "", err
	}

	if m.dryRun {
		m.logger.Info("dry run: would save active power scheme", "guid", prev, "path", m.store.Path())
	} else if err := m.store.Save(prev); err != nil {
		// Proceed without restore capability.
		m.logger.Warn("failed to save power scheme backup", "path", m.store.Path(), "error", err)
	} else {
		m.logger.Info("saved active power scheme", "guid", prev)
	}

	schemes, err := m.Schemes(ctx)
	if err != nil {
		m.logger.Warn("failed to enumerate power schemes", "error", err)
		return prev, nil
	}

	target, ok := FindByLabel(schemes, m.label)
	if !ok {
		m.logger.Warn("power scheme not found, leaving current scheme active", "label", m.label)
		return prev, nil
	}

	if err := m.runner.Run(ctx, "powercfg", "/setactive", target.GUID); err != nil {
		m.logger.Warn("failed to activate power scheme", "guid", target.GUID, "error", err)
		return prev, nil
	}

	m.logger.Info("switched power scheme", "label", target.Name, "guid", target.GUID)
	return prev, nil
}

// Restore reactivates the scheme saved by SaveAndSwitch. A missing or
// malformed backup file is logged and treated as a no-op. Activation
// failure (e.g. the scheme was removed externally) is returned to the
// caller, which logs it without aborting anything else.
func (m *Manager) Restore(ctx context.Context) error {
	rec, err := m.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			m.logger.Info("no power scheme backup found, nothing to restore")
			return nil
		}
		m.logger.Warn("power scheme backup unreadable, skipping restore", "error", err)
		return nil
	}

	if rec.PowerScheme == "" {
		m.logger.Warn("power scheme backup contains no identifier, skipping restore")
		return nil
	}

	if err := m.runner.Run(ctx, "powercfg", "/setactive", rec.PowerScheme); err != nil {
		return fmt.Errorf("restoring power scheme %s: %w", rec.PowerScheme, err)
	}

	m.logger.Info("restored power scheme", "guid", rec.PowerScheme)
	return nil
}
