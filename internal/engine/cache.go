// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"sync"
	"time"

	"contract-search/internal/search"
)

type cacheEntry struct {
	result     *search.Result
	generation uint64
	storedAt   time.Time
}

// resultCache is a bounded FIFO cache of search results keyed by query.
// Entries are tied to the projection generation they were computed against;
// a generation mismatch or an expired TTL invalidates on read.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	max     int
	ttl     time.Duration
	now     func() time.Time
}

func newResultCache(max int, ttl time.Duration, now func() time.Time) *resultCache {
	if now == nil {
		now = time.Now
	}
	return &resultCache{
		entries: make(map[string]cacheEntry),
		max:     max,
		ttl:     ttl,
		now:     now,
	}
}

func (c *resultCache) get(query string, generation uint64) (*search.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	if e.generation != generation || (c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl) {
		c.evict(query)
		return nil, false
	}
	return e.result, true
}

func (c *resultCache) put(query string, generation uint64, result *search.Result) {
	if c.max <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[query]; !exists {
		for len(c.entries) >= c.max && len(c.order) > 0 {
			c.evict(c.order[0])
		}
		c.order = append(c.order, query)
	}
	c.entries[query] = cacheEntry{result: result, generation: generation, storedAt: c.now()}
}

func (c *resultCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.order = c.order[:0]
}

// evict removes query from the map and the FIFO order. Caller holds mu.
func (c *resultCache) evict(query string) {
	delete(c.entries, query)
	for i, q := range c.order {
		if q == query {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
