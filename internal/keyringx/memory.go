package keyringx

import (
	"errors"
	"sync"
)

// MemoryStore is an in-process Store used by tests and headless environments
// where no platform keychain is available.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[[2]string]string

	// FailWrites makes Set/Delete return an error, for exercising
	// best-effort write paths.
	FailWrites bool

	// Counters let tests assert which paths were taken.
	GetCalls    int
	SetCalls    int
	DeleteCalls int
}

var errWriteFailed = errors.New("keyring write failed")

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[[2]string]string)}
}

func (m *MemoryStore) Set(service, account, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailWrites {
		return errWriteFailed
	}
	m.entries[[2]string{service, account}] = secret
	return nil
}

func (m *MemoryStore) Get(service, account string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	secret, ok := m.entries[[2]string{service, account}]
	if !ok || secret == "" {
		return "", false
	}
	return secret, true
}

func (m *MemoryStore) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.FailWrites {
		return errWriteFailed
	}
	delete(m.entries, [2]string{service, account})
	return nil
}
