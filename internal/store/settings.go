package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// userSettings is the on-disk shape of the persisted user settings.
type userSettings struct {
	CacheEnabled bool `json:"cache_enabled"`
}

// Settings persists the user-controlled cacheEnabled switch across restarts.
type Settings struct {
	path string

	mu      sync.RWMutex
	current userSettings
}

// OpenSettings loads settings from path, falling back to defaultCacheEnabled
// when no settings file exists yet.
func OpenSettings(path string, defaultCacheEnabled bool) (*Settings, error) {
	s := &Settings{
		path:    path,
		current: userSettings{CacheEnabled: defaultCacheEnabled},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.current); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}

// CacheEnabled reports the current value of the switch.
func (s *Settings) CacheEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.CacheEnabled
}

// SetCacheEnabled flips the switch and persists it.
func (s *Settings) SetCacheEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.CacheEnabled = enabled

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}
