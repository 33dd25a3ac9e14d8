package power

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	balancedGUID = "381b4222-f694-41f0-9685-ff5bb260df2e"
	highPerfGUID = "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c"
	saverGUID    = "a1841308-3541-4fab-bc81-f71556f20b4a"
)

// fakePowercfg simulates powercfg with a mutable active scheme.
type fakePowercfg struct {
	schemes map[string]string // guid -> name
	active  string
	setErr  error
	listErr error

	setCalls []string
}

func newFakePowercfg(withHighPerf bool) *fakePowercfg {
	schemes := map[string]string{
		balancedGUID: "Balanced",
		saverGUID:    "Power saver",
	}
	if withHighPerf {
		schemes[highPerfGUID] = "High performance"
	}
	return &fakePowercfg{schemes: schemes, active: balancedGUID}
}

func (f *fakePowercfg) Run(_ context.Context, name string, args ...string) error {
	if name != "powercfg" || len(args) != 2 || args[0] != "/setactive" {
		return fmt.Errorf("unexpected command: %s %v", name, args)
	}
	f.setCalls = append(f.setCalls, args[1])
	if f.setErr != nil {
		return f.setErr
	}
	if _, ok := f.schemes[args[1]]; !ok {
		return errors.New("the power scheme, subgroup or setting specified does not exist")
	}
	f.active = args[1]
	return nil
}

func (f *fakePowercfg) Output(_ context.Context, name string, args ...string) (string, error) {
	if name != "powercfg" || len(args) != 1 {
		return "", fmt.Errorf("unexpected command: %s %v", name, args)
	}
	switch args[0] {
	case "/getactivescheme":
		return fmt.Sprintf("Power Scheme GUID: %s  (%s)\n", f.active, f.schemes[f.active]), nil
	case "/list":
		if f.listErr != nil {
			return "", f.listErr
		}
		var sb strings.Builder
		sb.WriteString("Existing Power Schemes (* Active)\n")
		sb.WriteString("-----------------------------------\n")
		for guid, label := range f.schemes {
			star := ""
			if guid == f.active {
				star = " *"
			}
			fmt.Fprintf(&sb, "Power Scheme GUID: %s  (%s)%s\n", guid, label, star)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("unexpected powercfg flag: %s", args[0])
	}
}

func newTestManager(t *testing.T, fake *fakePowercfg) (*Manager, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))
	m := NewManager(Options{
		Runner:      fake,
		Store:       store,
		SchemeLabel: "High Performance",
	})
	return m, store
}

func TestSaveAndSwitch(t *testing.T) {
	fake := newFakePowercfg(true)
	m, store := newTestManager(t, fake)

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, balancedGUID, prev)
	assert.Equal(t, highPerfGUID, fake.active, "high performance scheme should be active")

	// Backup file holds the previous scheme.
	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, balancedGUID, rec.PowerScheme)
}

func TestSaveAndSwitch_BackupFileContent(t *testing.T) {
	fake := newFakePowercfg(true)
	m, store := newTestManager(t, fake)

	_, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"power_scheme": %q}`, balancedGUID), string(data))
}

func TestSaveAndSwitch_NoHighPerformanceScheme(t *testing.T) {
	fake := newFakePowercfg(false)
	m, _ := newTestManager(t, fake)

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)

	// The prior identifier is still returned even though no switch happened.
	assert.Equal(t, balancedGUID, prev)
	assert.Equal(t, balancedGUID, fake.active, "active scheme must be unchanged")
	assert.Empty(t, fake.setCalls, "no activation should be attempted")
}

func TestSaveAndSwitch_ListFails(t *testing.T) {
	fake := newFakePowercfg(true)
	fake.listErr = errors.New("powercfg exploded")
	m, _ := newTestManager(t, fake)

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err, "enumeration failure must not abort the run")
	assert.Equal(t, balancedGUID, prev)
	assert.Equal(t, balancedGUID, fake.active)
}

func TestSaveAndSwitch_ActivateFails(t *testing.T) {
	fake := newFakePowercfg(true)
	fake.setErr = errors.New("access denied")
	m, _ := newTestManager(t, fake)

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err, "activation failure must not abort the run")
	assert.Equal(t, balancedGUID, prev)
}

func TestSaveAndSwitch_OverwritesPriorBackup(t *testing.T) {
	fake := newFakePowercfg(true)
	m, store := newTestManager(t, fake)

	require.NoError(t, store.Save(saverGUID))

	_, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, balancedGUID, rec.PowerScheme, "backup is overwritten wholesale")
}

func TestSaveAndSwitch_DryRunPreservesExistingBackup(t *testing.T) {
	// A real run already saved Balanced and switched to High
	// performance. A dry run afterwards must not overwrite the saved
	// GUID with the now-active one, or undo would restore the wrong
	// scheme.
	fake := newFakePowercfg(true)
	fake.active = highPerfGUID

	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))
	require.NoError(t, store.Save(balancedGUID))

	m := NewManager(Options{
		Runner:      fake,
		Store:       store,
		SchemeLabel: "High Performance",
		DryRun:      true,
	})

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, highPerfGUID, prev)

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, balancedGUID, rec.PowerScheme, "dry run must not touch the backup file")
}

func TestSaveAndSwitch_DryRunWritesNoBackup(t *testing.T) {
	fake := newFakePowercfg(true)
	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))

	m := NewManager(Options{
		Runner:      fake,
		Store:       store,
		SchemeLabel: "High Performance",
		DryRun:      true,
	})

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, balancedGUID, prev)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "dry run must not create a backup file")
}

func TestRestore_RoundTrip(t *testing.T) {
	fake := newFakePowercfg(true)
	m, _ := newTestManager(t, fake)

	prev, err := m.SaveAndSwitch(context.Background())
	require.NoError(t, err)
	require.Equal(t, highPerfGUID, fake.active)

	require.NoError(t, m.Restore(context.Background()))
	assert.Equal(t, prev, fake.active, "restore must reactivate the original scheme")
}

func TestRestore_MissingBackupIsNoOp(t *testing.T) {
	fake := newFakePowercfg(true)
	m, _ := newTestManager(t, fake)

	err := m.Restore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fake.setCalls, "nothing should be activated")
}

func TestRestore_MalformedBackupIsNoOp(t *testing.T) {
	fake := newFakePowercfg(true)
	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	m := NewManager(Options{Runner: fake, Store: store, SchemeLabel: "High Performance"})

	err := m.Restore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fake.setCalls)
}

func TestRestore_EmptyIdentifierIsNoOp(t *testing.T) {
	fake := newFakePowercfg(true)
	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"power_scheme": ""}`), 0o644))

	m := NewManager(Options{Runner: fake, Store: store, SchemeLabel: "High Performance"})

	require.NoError(t, m.Restore(context.Background()))
	assert.Empty(t, fake.setCalls)
}

func TestRestore_UnknownSchemeReturnsError(t *testing.T) {
	fake := newFakePowercfg(true)
	store := NewStore(filepath.Join(t.TempDir(), "power_backup.json"))
	require.NoError(t, store.Save("00000000-0000-0000-0000-000000000000"))

	m := NewManager(Options{Runner: fake, Store: store, SchemeLabel: "High Performance"})

	err := m.Restore(context.Background())
	require.Error(t, err, "scheme removed externally surfaces as an error")
	assert.Equal(t, balancedGUID, fake.active)
}

func TestActiveScheme(t *testing.T) {
	fake := newFakePowercfg(true)
	m, _ := newTestManager(t, fake)

	guid, err := m.ActiveScheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, balancedGUID, guid)
}

func TestSchemes(t *testing.T) {
	fake := newFakePowercfg(true)
	m, _ := newTestManager(t, fake)

	schemes, err := m.Schemes(context.Background())
	require.NoError(t, err)
	assert.Len(t, schemes, 3)

	active := 0
	for _, s := range schemes {
		if s.Active {
			active++
			assert.Equal(t, balancedGUID, s.GUID)
		}
	}
	assert.Equal(t, 1, active)
}
