package domain

// Settings is the persisted settings record. Fields are pointers so an
// absent key stays absent on disk; sound defaults to enabled when unset.
type Settings struct {
	DarkMode     *bool `json:"darkMode,omitempty"`
	SoundEnabled *bool `json:"soundEnabled,omitempty"`
	AutoLock     *bool `json:"autoLock,omitempty"`
}

// Sound reports the effective sound setting (default true).
func (s Settings) Sound() bool {
	return s.SoundEnabled == nil || *s.SoundEnabled
}

// AutoLocked reports whether the inactivity auto-lock is enabled.
func (s Settings) AutoLocked() bool {
	return s.AutoLock != nil && *s.AutoLock
}

// Merge copies only the fields present in patch.
func (s *Settings) Merge(patch Settings) {
	if patch.DarkMode != nil {
		s.DarkMode = patch.DarkMode
	}
	if patch.SoundEnabled != nil {
		s.SoundEnabled = patch.SoundEnabled
	}
	if patch.AutoLock != nil {
		s.AutoLock = patch.AutoLock
	}
}
