package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache for analysis results and query embeddings.
// Purely an optimization: callers must behave correctly on every miss.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given default TTL, purging expired
// items every 10 minutes.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, 10*time.Minute),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

func (c *Cache) Flush() {
	c.store.Flush()
}

func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Key builds a namespaced cache key from a content hash so long inputs
// (full document text, queries) stay bounded.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}
