// Package kv exposes the hash-map persistence capability the rest of
// the backend is written against: named hashes of field -> value, with
// per-field atomic get/set/delete and a full scan. Redis provides it in
// production; Memory stands in for local development and tests.
package kv

import (
	"context"
	"sync"
)

type Hash interface {
	Get(ctx context.Context, key, field string) ([]byte, bool, error)
	GetAll(ctx context.Context, key string) (map[string][]byte, error)
	Set(ctx context.Context, key, field string, value []byte) error
	Delete(ctx context.Context, key, field string) (bool, error)
}

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key, field string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key][field]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *Memory) GetAll(ctx context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.data[key]))
	for field, val := range m.data[key] {
		cp := make([]byte, len(val))
		copy(cp, val)
		out[field] = cp
	}
	return out, nil
}

func (m *Memory) Set(ctx context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[key] == nil {
		m.data[key] = make(map[string][]byte)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key][field] = cp
	return nil
}

func (m *Memory) Delete(ctx context.Context, key, field string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key][field]; !ok {
		return false, nil
	}
	delete(m.data[key], field)
	return true, nil
}
