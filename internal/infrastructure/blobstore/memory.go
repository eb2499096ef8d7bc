package blobstore

import (
	"context"
	"sync"

	"nexusmarket/internal/domain/repository"
)

// Memory keeps blobs in process memory. It backs tests and single-process
// development runs.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Update runs fn while holding the store lock.
func (m *Memory) Update(ctx context.Context, key string, fn repository.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var current []byte
	if value, ok := m.blobs[key]; ok {
		current = append([]byte(nil), value...)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next != nil {
		m.blobs[key] = append([]byte(nil), next...)
	}
	return nil
}

// Set overwrites a blob unconditionally. Tests use it to plant stored data.
func (m *Memory) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), value...)
}

func (m *Memory) Close() error {
	return nil
}
