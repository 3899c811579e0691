package store

import (
	"context"
	"sync"
)

// MemoryBackend holds the encoded document in memory. Every Load decodes a
// fresh copy, so callers never share state through it.
type MemoryBackend struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{} }

func (m *MemoryBackend) Load(_ context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotExist
	}
	return decode(m.data)
}

func (m *MemoryBackend) Save(_ context.Context, doc *Document) error {
	b, err := encode(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = b
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves reports how many times Save succeeded.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryBackend) Close() error { return nil }
