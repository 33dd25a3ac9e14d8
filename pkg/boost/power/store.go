package power

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Record is the single-field persisted power-scheme backup. It is
// overwritten wholesale on each optimization run and read once during
// an undo request.
type Record struct {
	PowerScheme string `json:"power_scheme"`
}

// ErrNoRecord indicates that no backup record exists.
var ErrNoRecord = errors.New("no power scheme record")

// Store persists the power-scheme backup record to a JSON file.
type Store struct {
	path string
}

// NewStore creates a Store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backup file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes the given scheme GUID to the backup file, overwriting any
// prior content. The write is atomic: temp file then rename.
func (s *Store) Save(guid string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	data, err := json.MarshalIndent(Record{PowerScheme: guid}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// Load reads the backup record. It returns ErrNoRecord if the file does
// not exist, and a wrapped error if the file cannot be parsed.
func (s *Store) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, ErrNoRecord
		}
		return Record{}, fmt.Errorf("reading backup file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing backup file: %w", err)
	}

	return rec, nil
}
