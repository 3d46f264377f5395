package strapi

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
)

// DefaultCacheTTL is how long a cached CMS response stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// CachedClient wraps a Client with a TTL response cache. The cache is
// consulted before any network call and populated after a successful one.
// Cache failures are logged and treated as misses; they never surface to the
// caller. Concurrent fetches for the same key may each hit the network and
// both populate the cache (last write wins), a minor inefficiency but not a
// correctness hazard.
type CachedClient struct {
	client *Client
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps client with the given cache backend. cache may be
// nil, in which case every call goes straight to the network.
func NewCachedClient(client *Client, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedClient{
		client: client,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchCollection serves the page from cache when fresh, otherwise fetches
// and caches. Degraded results are never cached, so a backend outage does
// not pin empty pages for a full TTL.
func (c *CachedClient) FetchCollection(ctx context.Context, collection domain.Collection, q Query) (*CollectionResult, error) {
	key := CacheKey(collection, q)

	if cached := c.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := c.client.FetchCollection(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, result)

	return result, nil
}

// FetchCollectionOrEmpty is the graceful variant of FetchCollection.
func (c *CachedClient) FetchCollectionOrEmpty(ctx context.Context, collection domain.Collection, q Query) *CollectionResult {
	result, err := c.FetchCollection(ctx, collection, q)
	if err != nil {
		c.logger.Error("cached cms fetch degraded to empty result",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)

		return emptyResult(true)
	}

	return result
}

// GetBySlug is the cached slug lookup. Implemented on top of
// FetchCollection so slug lookups share the same cache keyspace.
func (c *CachedClient) GetBySlug(ctx context.Context, collection domain.Collection, slug string, q Query) (*domain.Entry, error) {
	q.Filters = Eq("slug", slug)
	q.Pagination = Pagination{Page: 1, PageSize: 1}

	result, err := c.FetchCollection(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, nil
	}

	return &result.Entries[0], nil
}

func (c *CachedClient) lookup(ctx context.Context, key string) *CollectionResult {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed, treating as miss", zap.String("key", key), zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var result CollectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("corrupt cache entry, treating as miss", zap.String("key", key), zap.Error(err))
		return nil
	}

	return &result
}

func (c *CachedClient) store(ctx context.Context, key string, result *CollectionResult) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}
