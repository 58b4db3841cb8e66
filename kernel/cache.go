package kernel

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/xid"
)

// Fingerprint hashes a node/term's canonical Dump() string to the cache key
// the CSG-term and boundary-rep caches of §4.9 index by.
func Fingerprint(dump string) uint64 {
	return xxhash.Sum64String(dump)
}

type cacheEntry struct {
	key    uint64
	id     xid.ID // monotonic generation stamp; breaks recency ties on eviction
	weight int
	value  Polyhedron
}

// Cache is a fingerprint-addressed, weight-bounded eviction cache (§4.9):
// every Put/Get touch refreshes an entry's generation stamp, and eviction
// always drops the entry with the oldest stamp once the total weight
// exceeds the budget. xid's embedded, sortable timestamp+counter makes
// "oldest" well defined without a second doubly-linked structure to keep
// in sync with the map.
type Cache struct {
	mu        sync.Mutex
	maxWeight int
	weight    int
	entries   map[uint64]*cacheEntry
}

// NewCache creates a cache bounded by maxWeight (e.g. total PolySet vertex
// count, or facet count for a Polyhedron cache).
func NewCache(maxWeight int) *Cache {
	return &Cache{maxWeight: maxWeight, entries: make(map[uint64]*cacheEntry)}
}

// Get returns the cached value for key, refreshing its recency stamp.
func (c *Cache) Get(key uint64) (Polyhedron, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.id = xid.New()
	return e.value, true
}

// Put inserts or refreshes a cached value, evicting the oldest entries
// until the cache is back under its weight budget.
func (c *Cache) Put(key uint64, weight int, value Polyhedron) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.weight += weight - e.weight
		e.weight, e.value, e.id = weight, value, xid.New()
	} else {
		c.entries[key] = &cacheEntry{key: key, id: xid.New(), weight: weight, value: value}
		c.weight += weight
	}
	c.evict()
}

func (c *Cache) evict() {
	for c.weight > c.maxWeight && len(c.entries) > 0 {
		var oldestKey uint64
		var oldest *cacheEntry
		for k, e := range c.entries {
			if oldest == nil || e.id.Compare(oldest.id) < 0 {
				oldestKey, oldest = k, e
			}
		}
		delete(c.entries, oldestKey)
		c.weight -= oldest.weight
	}
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
