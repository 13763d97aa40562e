package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// StateFile persists the resume position: the 0-based index of the next
// unprocessed line. It is written after each line is dispatched and once
// more with the total count at run completion.
type StateFile struct {
	path string
}

// NewStateFile creates a StateFile at the given path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

type stateDoc struct {
	NextIndex int `json:"next_index"`
}

// Load returns the saved next index. A missing, unreadable, or corrupt
// state file means "start from zero", never an error.
func (s *StateFile) Load() int {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	var doc stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}
	if doc.NextIndex < 0 {
		return 0
	}
	return doc.NextIndex
}

// Save writes the next index to process.
func (s *StateFile) Save(nextIndex int) error {
	data, err := json.MarshalIndent(stateDoc{NextIndex: nextIndex}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Remove deletes the state file, if present.
func (s *StateFile) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
