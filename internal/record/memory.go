package record

import (
	"context"
	"sync"
)

// Memory is an in-memory record store. It backs dev mode and tests, and
// is the substitutable fake the services are written against.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[collection]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, nil
}

func (m *Memory) Put(ctx context.Context, collection string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data == nil {
		delete(m.data, collection)
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[collection] = cp
	return nil
}
