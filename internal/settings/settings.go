// Package settings persists the last-used connection and destination
// choices between runs. The file holds the API key in plaintext, so it is
// written with owner-only permissions.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Settings are the remembered values from the previous run.
type Settings struct {
	ServerURL          string    `json:"serverUrl,omitempty"`
	APIKey             string    `json:"apiKey,omitempty"`
	RootFolder         string    `json:"rootFolder,omitempty"`
	QualityProfileID   int64     `json:"qualityProfileId,omitempty"`
	QualityProfileName string    `json:"qualityProfileName,omitempty"`
	Saved              time.Time `json:"saved,omitempty"`
}

// Load reads saved settings. A missing or unreadable file returns nil
// without error; stale or corrupt settings are never worth failing over.
func Load(path string) *Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// Save writes the settings with a fresh timestamp and 0600 permissions.
func (s *Settings) Save(path string) error {
	s.Saved = time.Now().Truncate(time.Second)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// HasDestination reports whether a root folder and quality profile were saved.
func (s *Settings) HasDestination() bool {
	return s != nil && s.RootFolder != "" && s.QualityProfileID != 0
}

// MaskKey renders an API key for display, keeping only a short suffix.
func MaskKey(k string) string {
	if k == "" {
		return "(none)"
	}
	if len(k) <= 6 {
		return "***"
	}
	return "..." + k[len(k)-6:]
}
