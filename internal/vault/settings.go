package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// SettingsStore owns the persisted settings record.
type SettingsStore struct {
	mu      sync.Mutex
	store   kv.Store
	current domain.Settings
}

func NewSettings(store kv.Store) (*SettingsStore, error) {
	s := &SettingsStore{store: store}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads settings from the store.
func (s *SettingsStore) Reload() error {
	raw, err := s.store.Get(keySettings)
	if errors.Is(err, kv.ErrNotFound) {
		s.mu.Lock()
		s.current = domain.Settings{}
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return storeErr("load "+keySettings, err)
	}
	var settings domain.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrFormat, keySettings, err)
	}
	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return nil
}

func (s *SettingsStore) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update merges the provided fields and persists the result.
func (s *SettingsStore) Update(patch domain.Settings) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.Merge(patch)
	raw, err := json.Marshal(next)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("encode %s: %w", keySettings, err)
	}
	if err := s.store.Set(keySettings, string(raw)); err != nil {
		return domain.Settings{}, storeErr("persist "+keySettings, err)
	}
	s.current = next
	return next, nil
}

// AutoLock reports the effective auto-lock setting; wired into the session
// watchdog.
func (s *SettingsStore) AutoLock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.AutoLocked()
}
