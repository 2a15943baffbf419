// Package settings persists the user settings that shape a review.
//
// Settings are stored as a msgpack document, by default in
// ~/.config/neo-review/settings.msgpack. A missing file yields the defaults:
// contract scripts are not allowed and the script hash is hidden.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/anchorageoss/visualsign-neoreview/review"
)

// Settings are the persisted user preferences
type Settings struct {
	AllowContractScripts bool `msgpack:"allow_contract_scripts" json:"allowContractScripts"`
	ShowScriptHash       bool `msgpack:"show_script_hash" json:"showScriptHash"`
}

// Default returns the settings of a fresh installation
func Default() Settings {
	return Settings{}
}

// ReviewOptions returns the display options derived from the settings
func (s Settings) ReviewOptions() review.Options {
	return review.Options{ShowScriptHash: s.ShowScriptHash}
}

// ContractScriptsLabel is the settings screen text for the contract scripts switch
func (s Settings) ContractScriptsLabel() string {
	if s.AllowContractScripts {
		return "Allowed"
	}
	return "NOT Allowed"
}

// FileStore keeps settings in a single msgpack file
type FileStore struct {
	Path string
}

// DefaultPath returns the default settings file location
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "neo-review", "settings.msgpack"), nil
}

// NewFileStore opens the store at path, or at DefaultPath when path is empty
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{Path: path}, nil
}

// Load reads the settings, returning Default when none were saved yet
func (f *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

// Save writes the settings atomically
func (f *FileStore) Save(s Settings) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

// Update loads the settings, applies fn and saves the result
func (f *FileStore) Update(fn func(*Settings)) (Settings, error) {
	s, err := f.Load()
	if err != nil {
		return Settings{}, err
	}
	fn(&s)
	if err := f.Save(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
