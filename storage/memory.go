package storage

import "sync"

// MemoryKV is an in-process KV. While FailGet or FailSet is non-nil the
// matching calls return it. Sets counts successful writes.
type MemoryKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	FailGet error
	FailSet error
	Sets    int
}

func NewMemory() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailGet != nil {
		return nil, m.FailGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = append([]byte(nil), value...)
	m.Sets++
	return nil
}

func (m *MemoryKV) Close() error { return nil }
