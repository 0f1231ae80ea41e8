package store

import (
	"context"
	"sync"
)

// Compile-time check: *MemoryStore must satisfy LocalStore.
var _ LocalStore = (*MemoryStore)(nil)

// MemoryStore keeps client state in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrClosed
	}
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) GetCredential(_ context.Context) (string, error) {
	return m.get(KeyCredential)
}

func (m *MemoryStore) SaveCredential(_ context.Context, token string) error {
	return m.set(KeyCredential, token)
}

func (m *MemoryStore) DeleteCredential(_ context.Context) error {
	return m.delete(KeyCredential)
}

func (m *MemoryStore) TourCompleted(_ context.Context) (bool, error) {
	v, err := m.get(KeyTourCompleted)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (m *MemoryStore) SetTourCompleted(_ context.Context, completed bool) error {
	if !completed {
		return m.delete(KeyTourCompleted)
	}
	return m.set(KeyTourCompleted, "true")
}

func (m *MemoryStore) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}
