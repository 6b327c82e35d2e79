package search

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"soundstageBack/internal/models"
)

// ResponseTTL is how long a cached response stays eligible for reuse.
const ResponseTTL = 5 * time.Minute

// ResponseCache memoizes assembled search responses keyed by the request.
type ResponseCache interface {
	Get(ctx context.Context, key string) (models.SearchResponse, bool)
	Set(ctx context.Context, key string, response models.SearchResponse)
	Clear(ctx context.Context)
}

type cacheEntry struct {
	response models.SearchResponse
	storedAt time.Time
}

// MemoryCache is the in-process ResponseCache. Staleness is checked lazily on
// lookup; expired entries are ignored and eventually overwritten, never swept.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (models.SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return models.SearchResponse{}, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return models.SearchResponse{}, false
	}
	return entry.response, true
}

func (c *MemoryCache) Set(_ context.Context, key string, response models.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{response: response, storedAt: c.now()}
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// RedisCache shares responses across processes. Expiry is delegated to redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "search:response:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.SearchResponse, bool) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return models.SearchResponse{}, false
	}
	var response models.SearchResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return models.SearchResponse{}, false
	}
	return response, true
}

func (c *RedisCache) Set(ctx context.Context, key string, response models.SearchResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, payload, c.ttl)
}

func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
