package domain

import (
	"context"
	"time"
)

// EntrySource lists the raw entries of a collection. Implemented by the
// Postgres repository and by the local file loader.
type EntrySource interface {
	// ListCollection returns every entry of the collection in storage order.
	ListCollection(ctx context.Context, collection Collection) ([]Entry, error)
}

// EntryRepository persists raw content entries.
// Implementations: internal/infra/postgres/repository.go
type EntryRepository interface {
	EntrySource

	// ReplaceCollection swaps the stored collection wholesale. Content is
	// immutable between syncs; a sync replaces the full set.
	ReplaceCollection(ctx context.Context, collection Collection, entries []Entry) error

	// GetBySlug retrieves a single entry. Returns nil when absent.
	GetBySlug(ctx context.Context, collection Collection, slug string) (*Entry, error)

	// CountByCollection returns the stored entry count per collection.
	CountByCollection(ctx context.Context) (map[Collection]int64, error)

	// TagCounts returns the distinct denormalized tags of a collection with
	// their entry counts.
	TagCounts(ctx context.Context, collection Collection) (map[string]int64, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/cache/memory.go, internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
