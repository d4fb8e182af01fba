package storage

import (
	"context"
	"sync"
)

// Memory - хранилище коллекций в памяти процесса.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemory создаёт новый экземпляр Memory.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Read возвращает копию сохранённой коллекции.
func (m *Memory) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	data, ok := m.data[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Write заменяет коллекцию копией data.
func (m *Memory) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[name] = append([]byte(nil), data...)
	return nil
}

// Close закрывает хранилище.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
