package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// DefaultAutoLockTimeout matches the original app's 2-minute inactivity
// window.
const DefaultAutoLockTimeout = 120 * time.Second

// Session tracks the currently authenticated principal. The markers are
// persisted so a session survives process restarts until an explicit
// logout, and an inactivity watchdog logs the session out when auto-lock
// is enabled and no activity arrives within the timeout.
type Session struct {
	mu       sync.Mutex
	store    kv.Store
	timeout  time.Duration
	autoLock func() bool // settings hook; nil disables the watchdog

	principal     *domain.Principal
	authenticated bool
	timer         *time.Timer
}

func NewSession(store kv.Store, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultAutoLockTimeout
	}
	return &Session{store: store, timeout: timeout}
}

// SetAutoLock installs the settings lookup consulted each time the
// watchdog is re-armed.
func (s *Session) SetAutoLock(fn func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoLock = fn
	s.resetWatchdogLocked()
}

// Resume restores a persisted session from the store, if one exists.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flag, err := s.store.Get(keyAuth)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("load session", err)
	}
	if flag != "true" {
		return nil
	}
	raw, err := s.store.Get(keyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return storeErr("load session principal", err)
	}
	var p domain.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fmt.Errorf("%w: decode session principal: %v", domain.ErrFormat, err)
	}
	s.principal = &p
	s.authenticated = true
	s.resetWatchdogLocked()
	logrus.WithField("principal", p.ID).Info("session resumed")
	return nil
}

// Establish persists and activates a session for p.
func (s *Session) Establish(p domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.establishLocked(p)
}

func (s *Session) establishLocked(p domain.Principal) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session principal: %w", err)
	}
	if err := s.store.Set(keyCurrentUser, string(raw)); err != nil {
		return storeErr("persist session principal", err)
	}
	if err := s.store.Set(keyAuth, "true"); err != nil {
		return storeErr("persist session flag", err)
	}
	s.principal = &p
	s.authenticated = true
	s.resetWatchdogLocked()
	return nil
}

// Refresh updates the persisted snapshot when the directory entry for the
// session principal changes (name, role or PIN edits).
func (s *Session) Refresh(p domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.principal == nil || s.principal.ID != p.ID {
		return nil
	}
	return s.establishLocked(p)
}

// Logout clears both session markers and stops the watchdog.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(keyAuth); err != nil {
		return storeErr("clear session flag", err)
	}
	if err := s.store.Delete(keyCurrentUser); err != nil {
		return storeErr("clear session principal", err)
	}
	s.principal = nil
	s.authenticated = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return nil
}

// Current returns the session principal, if any.
func (s *Session) Current() (domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.principal == nil {
		return domain.Principal{}, false
	}
	return *s.principal, true
}

// RequireAuthenticated returns the session principal or an authentication
// error.
func (s *Session) RequireAuthenticated() (domain.Principal, error) {
	p, ok := s.Current()
	if !ok {
		return domain.Principal{}, fmt.Errorf("%w: no active session", domain.ErrAuthentication)
	}
	return p, nil
}

// RequireAdmin returns the session principal when it holds the admin role.
func (s *Session) RequireAdmin() (domain.Principal, error) {
	p, err := s.RequireAuthenticated()
	if err != nil {
		return domain.Principal{}, err
	}
	if !p.IsAdmin() {
		return domain.Principal{}, fmt.Errorf("%w: admin access required", domain.ErrPermission)
	}
	return p, nil
}

// Touch records activity, pushing the auto-lock deadline out.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetWatchdogLocked()
}

func (s *Session) resetWatchdogLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.authenticated || s.autoLock == nil || !s.autoLock() {
		return
	}
	s.timer = time.AfterFunc(s.timeout, func() {
		if err := s.Logout(); err != nil {
			logrus.WithError(err).Error("auto-lock logout failed")
			return
		}
		logrus.Info("session locked after inactivity")
	})
}
