// Package keyringx wraps the OS-native credential store (Keychain, Secret
// Service, Windows Credential Manager) behind a small interface so the secret
// resolver can be tested without touching the real keychain.
package keyringx

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// Store is the OS secret store boundary. Get reports absence as ok=false;
// errors are reserved for genuine store faults and are surfaced by Set/Delete
// only, where the caller decides whether the write was best-effort.
type Store interface {
	Set(service, account, secret string) error
	Get(service, account string) (string, bool)
	Delete(service, account string) error
}

// SystemStore talks to the platform keychain via go-keyring.
type SystemStore struct{}

func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

func (s *SystemStore) Set(service, account, secret string) error {
	return keyring.Set(service, account, secret)
}

func (s *SystemStore) Get(service, account string) (string, bool) {
	secret, err := keyring.Get(service, account)
	if err != nil || secret == "" {
		// Absence and store faults collapse to "not there": every caller
		// has a fallback path and none can act on the distinction.
		return "", false
	}
	return secret, true
}

func (s *SystemStore) Delete(service, account string) error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
