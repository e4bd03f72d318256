// Copyright Contract Search contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-search/internal/search"
)

func TestResultCacheHitAndMiss(t *testing.T) {
	c := newResultCache(4, 0, nil)
	r := &search.Result{Query: "cena"}
	c.put("cena", 1, r)

	got, ok := c.get("cena", 1)
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = c.get("ucet", 1)
	assert.False(t, ok)
}

func TestResultCacheGenerationMismatchInvalidates(t *testing.T) {
	c := newResultCache(4, 0, nil)
	c.put("cena", 1, &search.Result{Query: "cena"})

	_, ok := c.get("cena", 2)
	assert.False(t, ok)
	// The stale entry is gone even for its own generation.
	_, ok = c.get("cena", 1)
	assert.False(t, ok)
}

func TestResultCacheTTLExpiry(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	c := newResultCache(4, time.Minute, clock)
	c.put("cena", 1, &search.Result{Query: "cena"})

	now = now.Add(59 * time.Second)
	_, ok := c.get("cena", 1)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.get("cena", 1)
	assert.False(t, ok)
}

func TestResultCacheBoundedEviction(t *testing.T) {
	c := newResultCache(2, 0, nil)
	c.put("a", 1, &search.Result{Query: "a"})
	c.put("b", 1, &search.Result{Query: "b"})
	c.put("c", 1, &search.Result{Query: "c"})

	_, ok := c.get("a", 1)
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.get("b", 1)
	assert.True(t, ok)
	_, ok = c.get("c", 1)
	assert.True(t, ok)

	for i := 0; i < 10; i++ {
		c.put(fmt.Sprintf("q%d", i), 1, &search.Result{})
	}
	c.mu.Lock()
	assert.LessOrEqual(t, len(c.entries), 2)
	c.mu.Unlock()
}

func TestResultCacheDisabled(t *testing.T) {
	c := newResultCache(0, 0, nil)
	c.put("cena", 1, &search.Result{Query: "cena"})
	_, ok := c.get("cena", 1)
	assert.False(t, ok)
}

func TestResultCachePurge(t *testing.T) {
	c := newResultCache(4, 0, nil)
	c.put("cena", 1, &search.Result{Query: "cena"})
	c.purge()
	_, ok := c.get("cena", 1)
	assert.False(t, ok)
}
