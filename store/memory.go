package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Memory is a Store held in a map. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// NewMemoryFrom returns a Memory store holding the given file contents.
func NewMemoryFrom(files map[string]string) *Memory {
	m := NewMemory()
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

func (m *Memory) Open(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.files[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	m.files[name] = bytes.Clone(data)
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(context.Context) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// Bytes returns the content of name, or nil.
func (m *Memory) Bytes(name string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[name]
}
