// Package kv defines the synchronous string key-value store the vault
// persists through, with in-memory, Redis and MySQL drivers. Each key is
// the unit of atomicity; nothing here coordinates writes across keys.
package kv

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence medium contract. Values are JSON-encoded
// strings owned by the caller; the store treats them as opaque.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}
