package cache

import (
	"context"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"

	"github.com/glowdesk/glowdesk/internal/logger"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache  *goCache.Cache
	logger *logger.Logger
}

// Global cache instance
var globalCache *InMemoryCache

// Initialize sets up the global cache instance
func Initialize(log *logger.Logger) Cache {
	if globalCache == nil {
		globalCache = &InMemoryCache{
			cache:  goCache.New(DefaultExpiration, DefaultCleanupInterval),
			logger: log,
		}
	}
	return globalCache
}

// NewInMemoryCache returns the process-wide cache instance
func NewInMemoryCache() Cache {
	if globalCache == nil {
		Initialize(nil)
	}
	return globalCache
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

func (c *InMemoryCache) Flush(ctx context.Context) {
	c.cache.Flush()
}
