package store

import "sync"

// Memory is a map-backed store, used in tests and for throwaway runs.
// Contents are lost on close.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory makes an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

// Get returns the value for the key, if present
func (m *Memory) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	res := make([]byte, len(val))
	copy(res, val)
	return res, true, nil
}

// Set stores the value under the key
func (m *Memory) Set(key string, val []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(val))
	copy(stored, val)
	m.data[key] = stored
	return nil
}

// Delete removes the key, no-op if absent
func (m *Memory) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() error { return nil }
