package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/groupcache/singleflight"
)

// Cache is a small TTL cache whose misses are computed at most once at a
// time per key.
type Cache[K string, V any] struct {
	cache *ristretto.Cache[K, V]
	group singleflight.Group
	ttl   time.Duration
}

func NewCache[K string, V any](ttl time.Duration) *Cache[K, V] {
	cache, _ := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: 64,
		MaxCost:     64,
		BufferItems: 64,
	})
	return &Cache[K, V]{
		cache: cache,
		group: singleflight.Group{},
		ttl:   ttl,
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

// ComputeIfAbsent returns the cached value for key, or computes it through
// f. Concurrent callers for the same key share one in-flight computation.
func (c *Cache[K, V]) ComputeIfAbsent(key K, f func() (V, error)) (*V, error) {
	v, ok := c.cache.Get(key)
	if ok {
		return &v, nil
	}
	cv, err := c.group.Do(string(key), func() (any, error) {
		r, err := f()
		if err != nil {
			return nil, err
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	r := cv.(V)
	c.cache.SetWithTTL(key, r, 1, c.ttl)
	c.cache.Wait()
	return &r, nil
}

func (c *Cache[K, V]) Delete(key K) {
	c.cache.Del(key)
}

func (c *Cache[K, V]) Clear() {
	c.cache.Clear()
}
