package vault

import (
	"testing"
	"time"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// env bundles a fully wired in-memory vault for tests.
type env struct {
	store    *kv.Memory
	session  *Session
	notes    *Notifications
	settings *SettingsStore
	dir      *Directory
	txs      *Transactions
	debts    *Debts
	backup   *Backup
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := kv.NewMemory()
	session := NewSession(store, time.Minute)
	notes, err := NewNotifications(store)
	if err != nil {
		t.Fatal(err)
	}
	settings, err := NewSettings(store)
	if err != nil {
		t.Fatal(err)
	}
	session.SetAutoLock(settings.AutoLock)
	dir, err := NewDirectory(store, session, notes)
	if err != nil {
		t.Fatal(err)
	}
	txs, err := NewTransactions(store, notes)
	if err != nil {
		t.Fatal(err)
	}
	debts, err := NewDebts(store, notes)
	if err != nil {
		t.Fatal(err)
	}
	backup := NewBackup(store, session, dir, txs, debts, settings, notes)
	return &env{
		store:    store,
		session:  session,
		notes:    notes,
		settings: settings,
		dir:      dir,
		txs:      txs,
		debts:    debts,
		backup:   backup,
	}
}

// setup runs first-run initialization and returns the admin principal.
func (e *env) setup(t *testing.T) domain.Principal {
	t.Helper()
	admin, err := e.dir.Initialize("Alice", "1234", "1234")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return admin
}

func (e *env) addMember(t *testing.T, name, pin string) domain.Principal {
	t.Helper()
	member, err := e.dir.AddMember(name, pin, domain.RoleMember)
	if err != nil {
		t.Fatalf("AddMember(%s): %v", name, err)
	}
	return member
}
