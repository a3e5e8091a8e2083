// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package termcache is the LRU term-dictionary cache of spec §4.2: a
// bounded (text, kind) -> term id map, consulted in batch so a query's
// entire set of bound terms round-trips to the backend at most once.
package termcache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/vital-ai/vitalgraph-sparql/sql"
)

// Cache is an LRU mapping from (text, kind) to term id, bounded by a
// configurable capacity. Safe for concurrent use: it is process-wide and
// shared across queries per spec §5 ("the term cache ... may be read
// concurrently; mutations must be internally synchronised").
type Cache struct {
	lru *lru.Cache
	// overflow, if non-nil, is consulted on a miss and written to on
	// eviction, giving hot entries a chance to survive a capacity-driven
	// eviction without ever being treated as authoritative (see Overflow).
	overflow Overflow
}

// Overflow is the optional on-disk backing store for LRU-evicted entries
// (sql/... callers pass this package's *BoltOverflow; see persist.go). It is
// never authoritative: a miss in both the LRU and the overflow still means
// "go ask the backend", matching spec §4.2's invariant that the cache never
// returns a stale id and only ever stores ids the database itself returned.
type Overflow interface {
	Get(key sql.CacheKey) (sql.TermID, bool)
	Put(key sql.CacheKey, id sql.TermID)
}

// New builds a Cache with the given capacity and no overflow.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = 1
	}
	l, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// NewWithOverflow builds a Cache that spills LRU-evicted entries into the
// given overflow store and consults it on a local miss before declaring a
// full miss.
func NewWithOverflow(capacity int, overflow Overflow) (*Cache, error) {
	if capacity <= 0 {
		capacity = 1
	}
	c := &Cache{overflow: overflow}
	l, err := lru.NewWithEvict(capacity, func(key interface{}, value interface{}) {
		if c.overflow == nil {
			return
		}
		c.overflow.Put(key.(sql.CacheKey), value.(sql.TermID))
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

// Get returns the cached id for (text, kind), if present.
func (c *Cache) Get(key sql.CacheKey) (sql.TermID, bool) {
	if v, ok := c.lru.Get(key); ok {
		return v.(sql.TermID), true
	}
	if c.overflow != nil {
		if id, ok := c.overflow.Get(key); ok {
			c.lru.Add(key, id)
			return id, true
		}
	}
	return 0, false
}

// GetBatch resolves every key it can from the cache, returning the hits and
// the keys that still need a backend round-trip.
func (c *Cache) GetBatch(keys []sql.CacheKey) (hits map[sql.CacheKey]sql.TermID, misses []sql.CacheKey) {
	hits = make(map[sql.CacheKey]sql.TermID, len(keys))
	for _, k := range keys {
		if id, ok := c.Get(k); ok {
			hits[k] = id
		} else {
			misses = append(misses, k)
		}
	}
	return hits, misses
}

// Put caches one authoritative (key, id) pair. Callers must only pass ids
// the backend itself returned for this key, never a locally-invented one.
func (c *Cache) Put(key sql.CacheKey, id sql.TermID) {
	c.lru.Add(key, id)
}

// PutBatch caches a batch of authoritative resolutions, evicting the
// least-recently-used entries as needed.
func (c *Cache) PutBatch(m map[sql.CacheKey]sql.TermID) {
	for k, id := range m {
		c.Put(k, id)
	}
}

// Clear empties the cache. Safe at any time: the cache is soft state.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Len reports the number of entries currently cached (for metrics/tests).
func (c *Cache) Len() int {
	return c.lru.Len()
}
