// Package toml stores bookgrab settings in a TOML file.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/bookgrab"
	"github.com/pelletier/go-toml/v2"
)

// Ensure SettingsStore implements bookgrab.SettingsStore.
var _ bookgrab.SettingsStore = (*SettingsStore)(nil)

// SettingsPathEnv overrides the default settings file location.
const SettingsPathEnv = "BOOKGRAB_SETTINGS"

// DefaultPath returns $BOOKGRAB_SETTINGS if set, otherwise
// ~/.bookgrab/settings.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(SettingsPathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".bookgrab", "settings.toml"), nil
}

// SettingsStore is a file-based bookgrab.SettingsStore.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
	defaults func() *bookgrab.Settings
}

// NewSettingsStore creates a store backed by path. Keys missing from the
// file take their values from bookgrab.DefaultSettings(dir).
func NewSettingsStore(path, dir string) *SettingsStore {
	return &SettingsStore{
		filePath: path,
		defaults: func() *bookgrab.Settings { return bookgrab.DefaultSettings(dir) },
	}
}

// Path returns the settings file location.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Load reads the settings file. If the file does not exist the defaults are
// written to it and returned.
func (s *SettingsStore) Load() (*bookgrab.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.defaults()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.save(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, bookgrab.Errorf(bookgrab.EINVALID, "invalid settings file %s: %v", s.filePath, err)
	}
	return settings, nil
}

// Save writes settings to the file, creating its directory if needed.
func (s *SettingsStore) Save(settings *bookgrab.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(settings)
}

func (s *SettingsStore) save(settings *bookgrab.Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o600)
}
