// Package cache provides the in-process TTL cache backend.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory implements domain.Cache with a process-local map. Entries older
// than their TTL are treated as absent and evicted lazily on the next read;
// there is no background sweeper.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemory creates an empty in-process cache.
func NewMemory(logger *zap.Logger) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		logger:  logger,
	}
}

// Get retrieves a value by key. Returns nil for missing or expired entries;
// an expired entry is deleted on access.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		m.logger.Debug("cache entry expired", zap.String("key", key))

		return nil, nil
	}

	return entry.data, nil
}

// Set stores a value with the given TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		data:      value,
		expiresAt: m.now().Add(ttl),
	}

	return nil
}

// Delete removes a value by key. Idempotent.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Clear removes all cached values.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)

	return nil
}

// Len reports the number of stored entries, expired ones included (eviction
// is lazy).
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
