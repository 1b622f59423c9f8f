package store

import (
	"context"
	"sync"
)

// MemoryStorage хранилище в памяти процесса
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage создает пустое хранилище в памяти
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (ms *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (ms *MemoryStorage) Set(_ context.Context, key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStorage) Remove(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}

func (ms *MemoryStorage) Close() error {
	return nil
}
