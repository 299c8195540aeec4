package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"taskdash/domain/model"
)

const settingsFileName = "settings.json"

// SettingsStore is a flat JSON string map used for small persisted values
// such as per-project token material.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

func NewSettingsStore(dataDir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dataDir, settingsFileName)}
}

// Get returns the value for key and whether it was present.
func (s *SettingsStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	v, ok := m[key]
	return v, ok
}

// Set writes key=value and persists the map.
func (s *SettingsStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	m[key] = value
	return s.save(m)
}

// Delete removes key; no-op when absent.
func (s *SettingsStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.load()
	for _, k := range keys {
		delete(m, k)
	}
	return s.save(m)
}

func (s *SettingsStore) load() map[string]string {
	m := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return m
	}
	_ = json.Unmarshal(data, &m)
	return m
}

func (s *SettingsStore) save(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", model.ErrFileIO, s.path, err)
	}
	return nil
}
