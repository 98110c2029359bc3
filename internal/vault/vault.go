// Package vault holds the MoneyVault record managers: the principal
// directory, the session, the transaction and debt ledgers, the
// notification queue, the settings store and the backup codec. Every
// manager keeps an in-memory copy of its list and writes the whole list
// back to its store key on each mutation, the same shape the original
// browser app persisted.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"

	"moneyvault/internal/domain"
	"moneyvault/internal/kv"
)

// Store keys shared with the original browser app. Existing backups and
// data sets depend on these exact names.
const (
	keyUsers         = "moneyVault_users"
	keyTransactions  = "moneyVault_transactions"
	keyDebts         = "moneyVault_debts"
	keySettings      = "moneyVault_settings"
	keyNotifications = "moneyVault_notifications"
	keyAuth          = "moneyVault_auth"
	keyCurrentUser   = "moneyVault_currentUser"
)

// Backup envelope compatibility contract.
const (
	appTag        = "MoneyVault"
	backupVersion = "1.0"
)

// storeErr tags a persistence-medium failure so the boundary maps it to an
// IO failure, keeping the underlying cause in the message.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrIO)
}

// loadList reads and decodes a JSON list key; a missing key is an empty
// list, a malformed value is a format error.
func loadList[T any](store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("load "+key, err)
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrFormat, key, err)
	}
	return items, nil
}

// persistList encodes and writes a JSON list key.
func persistList[T any](store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(key, string(raw)); err != nil {
		return storeErr("persist "+key, err)
	}
	return nil
}
