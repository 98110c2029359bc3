package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// ResetConfirmToken is the confirmation string the destructive full reset
// demands, matching the original app's typed prompt.
const ResetConfirmToken = "RESET"

// Envelope is the versioned backup container. Sections are carried as raw
// JSON so a restore of an export reproduces the stored bytes exactly.
type Envelope struct {
	Version   string       `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
	App       string       `json:"app"`
	Data      EnvelopeData `json:"data"`
}

// EnvelopeData holds the four persisted sections. Absent sections stay
// absent and are skipped on restore.
type EnvelopeData struct {
	Transactions json.RawMessage `json:"transactions,omitempty"`
	Users        json.RawMessage `json:"users,omitempty"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	Debts        json.RawMessage `json:"debts,omitempty"`
}

// reloader is any manager that can discard its cache and re-read its key.
type reloader interface {
	Reload() error
}

// Backup reads and writes the persisted keys directly, independent of the
// managers' caches; after a restore or reset it tells the managers to
// reload.
type Backup struct {
	store     kv.Store
	session   *Session
	reloaders []reloader
}

func NewBackup(store kv.Store, session *Session, reloaders ...reloader) *Backup {
	return &Backup{store: store, session: session, reloaders: reloaders}
}

// Export gathers the current contents of every persisted section into an
// indented JSON envelope.
func (b *Backup) Export(now time.Time) ([]byte, error) {
	transactions, err := b.section(keyTransactions, "[]")
	if err != nil {
		return nil, err
	}
	users, err := b.section(keyUsers, "[]")
	if err != nil {
		return nil, err
	}
	settings, err := b.section(keySettings, "{}")
	if err != nil {
		return nil, err
	}
	debts, err := b.section(keyDebts, "[]")
	if err != nil {
		return nil, err
	}
	env := Envelope{
		Version:   backupVersion,
		Timestamp: now.UTC(),
		App:       appTag,
		Data: EnvelopeData{
			Transactions: transactions,
			Users:        users,
			Settings:     settings,
			Debts:        debts,
		},
	}
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return raw, nil
}

// Restore validates the envelope and overwrites each section present in it
// wholesale. Each section write is atomic at the key level; cross-section
// atomicity is not guaranteed, so a failing medium can leave earlier
// sections restored and later ones untouched.
func (b *Backup) Restore(raw []byte) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: invalid backup file", domain.ErrFormat)
	}
	if env.App != appTag {
		return fmt.Errorf("%w: invalid backup file", domain.ErrFormat)
	}
	sections := []struct {
		key string
		raw json.RawMessage
	}{
		{keyTransactions, env.Data.Transactions},
		{keyUsers, env.Data.Users},
		{keySettings, env.Data.Settings},
		{keyDebts, env.Data.Debts},
	}
	for _, s := range sections {
		if s.raw == nil {
			continue
		}
		if err := b.store.Set(s.key, string(s.raw)); err != nil {
			return storeErr("restore "+s.key, err)
		}
	}
	if err := b.reloadAll(); err != nil {
		return err
	}
	logrus.WithField("version", env.Version).Info("backup restored")
	return nil
}

// ResetAll clears the entire store, including session markers. The confirm
// token must be supplied exactly.
func (b *Backup) ResetAll(confirm string) error {
	if confirm != ResetConfirmToken {
		return fmt.Errorf("%w: reset requires confirmation token %q", domain.ErrValidation, ResetConfirmToken)
	}
	if err := b.store.Clear(); err != nil {
		return storeErr("reset store", err)
	}
	if b.session != nil {
		if err := b.session.Logout(); err != nil && !errors.Is(err, kv.ErrNotFound) {
			logrus.WithError(err).Warn("failed to clear session after reset")
		}
	}
	if err := b.reloadAll(); err != nil {
		return err
	}
	logrus.Warn("vault reset: all data cleared")
	return nil
}

func (b *Backup) reloadAll() error {
	for _, r := range b.reloaders {
		if err := r.Reload(); err != nil {
			return err
		}
	}
	return nil
}

// section reads one key's raw value, substituting the empty default when
// the key has never been written.
func (b *Backup) section(key, fallback string) (json.RawMessage, error) {
	raw, err := b.store.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return json.RawMessage(fallback), nil
	}
	if err != nil {
		return nil, storeErr("export "+key, err)
	}
	return json.RawMessage(raw), nil
}
