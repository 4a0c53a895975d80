package store

import (
	"context"
	"errors"
	"sync"

	"reminder_webapp/internal/storage"
)

// memBlob is an in-memory BlobStore for tests. failSaves simulates a
// storage quota/outage: saves error but the store must keep serving.
type memBlob struct {
	mu        sync.Mutex
	data      map[string][]byte
	failSaves bool
}

func newMemBlob() *memBlob {
	return &memBlob{data: make(map[string][]byte)}
}

func (m *memBlob) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (m *memBlob) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaves {
		return errors.New("quota exceeded")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[key] = cp
	return nil
}

func (m *memBlob) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memBlob) Close() error { return nil }
