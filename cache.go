package restchain

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// InMemoryCache is the default Cache implementation: a sharded map
// guarded by per-shard RWMutexes, safe for concurrent use. Expired
// entries are dropped lazily on lookup; SweepExpired removes them
// eagerly when a CacheJanitor is configured.
type InMemoryCache struct {
	shards    []*cacheShard
	numShards int
}

type cacheShard struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
}

// NewInMemoryCache creates an empty sharded cache.
func NewInMemoryCache() *InMemoryCache {
	numShards := 16
	shards := make([]*cacheShard, numShards)
	for i := range shards {
		shards[i] = &cacheShard{
			store: make(map[string]*CacheEntry),
		}
	}
	return &InMemoryCache{
		shards:    shards,
		numShards: numShards,
	}
}

func (c *InMemoryCache) getShard(key string) *cacheShard {
	hash := fnv.New32a()
	hash.Write([]byte(key))
	return c.shards[hash.Sum32()%uint32(c.numShards)]
}

// Get retrieves an unexpired entry. An expired entry is removed and
// reported as absent.
func (c *InMemoryCache) Get(key string) (*CacheEntry, bool) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, exists := shard.store[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		delete(shard.store, key)
		return nil, false
	}

	return entry, true
}

// Set stores an entry with expiry now+ttl.
func (c *InMemoryCache) Set(key string, entry *CacheEntry, ttl time.Duration) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry.ExpiresAt = time.Now().Add(ttl)
	shard.store[key] = entry
}

// Delete removes an entry.
func (c *InMemoryCache) Delete(key string) {
	shard := c.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	delete(shard.store, key)
}

// Clear removes all entries.
func (c *InMemoryCache) Clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.store = make(map[string]*CacheEntry)
		shard.mu.Unlock()
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.store)
		shard.mu.RUnlock()
	}
	return total
}

// SweepExpired removes every expired entry and returns how many were
// dropped.
func (c *InMemoryCache) SweepExpired() int {
	now := time.Now()
	removed := 0
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, entry := range shard.store {
			if now.After(entry.ExpiresAt) {
				delete(shard.store, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

// cacheKey builds the lookup key from the final URL, the query
// parameters and the raw per-call headers argument. The per-call headers
// are keyed as passed, before merging with node or client defaults, so
// two calls that resolve to the same merged header set but supply
// different per-call headers occupy different cache slots. fmt renders
// maps with sorted keys, so the key is deterministic.
func cacheKey(url string, params, rawHeaders map[string]string) string {
	return fmt.Sprintf("%s|%v|%v", url, params, rawHeaders)
}
