// Package prefs persists the last-used backup choices between runs. The
// executor never reads these; only the front end does.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Preferences struct {
	SourceFolder      string `json:"source_folder"`
	DestinationFolder string `json:"destination_folder"`
	Compress          bool   `json:"compress"`
}

// DefaultPath is where the CLI keeps its preferences unless told otherwise.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".savepoint", "config.json")
	}
	return filepath.Join(home, ".savepoint", "config.json")
}

// Load reads preferences from path. A missing file is not an error and
// yields zero-value preferences; a corrupt file is reported so the caller
// can warn and fall back to defaults.
func Load(path string) (Preferences, error) {
	var p Preferences
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parse preferences: %w", err)
	}
	return p, nil
}

// Save writes preferences to path, creating the containing folder.
func Save(path string, p Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preferences folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
