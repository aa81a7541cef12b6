// MIT License
//
// Copyright (c) 2026 Stagehand Engine Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package resource

import (
	"container/list"
	"sync"
)

// DefaultCacheCapacity bounds the cache when no capacity is configured.
const DefaultCacheCapacity = 64

// UnloadCallback is invoked after an entry leaves the cache, outside the
// cache lock. The owning provider releases its side of the asset here.
type UnloadCallback func(key string, asset *Asset)

// cacheEntry is a reference-counted cached asset.
// Invariant: at most one entry per key; an entry is removed only when its
// reference count is zero and the cache is above capacity (eviction), or on
// explicit removal.
type cacheEntry struct {
	key   string
	asset *Asset
	refs  int
	hits  uint64
	elem  *list.Element
}

// Cache is a bounded, reference-counted asset cache with a configurable
// eviction policy. Insertion and eviction are serialized per key by the
// cache mutex.
type Cache struct {
	mu       sync.Mutex
	capacity int
	policy   EvictionPolicy
	entries  map[string]*cacheEntry
	// recency keeps entries ordered most-recently-used first
	recency *list.List
	onEvict UnloadCallback
}

// NewCache creates a cache bounded to capacity entries. A non-positive
// capacity falls back to DefaultCacheCapacity. onEvict may be nil.
func NewCache(capacity int, policy EvictionPolicy, onEvict UnloadCallback) (*Cache, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		policy:   policy,
		entries:  make(map[string]*cacheEntry),
		recency:  list.New(),
		onEvict:  onEvict,
	}, nil
}

// Get returns the cached asset for key while taking a reference on it.
// Every hit refreshes the entry's recency and frequency.
func (x *Cache) Get(key string) (*Asset, bool) {
	x.mu.Lock()
	entry, ok := x.entries[key]
	if !ok {
		x.mu.Unlock()
		return nil, false
	}
	entry.refs++
	entry.hits++
	x.recency.MoveToFront(entry.elem)
	asset := entry.asset
	x.mu.Unlock()
	return asset, true
}

// Put inserts the asset under its key with refs initial references.
// If the key is already present the existing entry wins, its reference
// count is bumped by refs and its asset is returned, so at most one entry
// ever exists per key. Entries exceeding capacity are evicted according to
// the configured policy.
func (x *Cache) Put(key string, asset *Asset, refs int) *Asset {
	if refs < 0 {
		refs = 0
	}
	x.mu.Lock()
	if existing, ok := x.entries[key]; ok {
		existing.refs += refs
		existing.hits++
		x.recency.MoveToFront(existing.elem)
		out := existing.asset
		x.mu.Unlock()
		return out
	}
	entry := &cacheEntry{key: key, asset: asset, refs: refs, hits: 1}
	entry.elem = x.recency.PushFront(entry)
	x.entries[key] = entry
	evicted := x.evictLocked()
	x.mu.Unlock()

	x.notify(evicted)
	return asset
}

// Release drops one reference from the entry. Unreferenced entries stay
// cached until capacity pressure evicts them.
func (x *Cache) Release(key string) {
	x.mu.Lock()
	entry, ok := x.entries[key]
	if ok && entry.refs > 0 {
		entry.refs--
	}
	evicted := x.evictLocked()
	x.mu.Unlock()

	x.notify(evicted)
}

// Remove drops the entry regardless of capacity pressure. It reports whether
// an entry was removed and invokes the unload callback when it was.
func (x *Cache) Remove(key string) bool {
	x.mu.Lock()
	entry, ok := x.entries[key]
	if !ok {
		x.mu.Unlock()
		return false
	}
	delete(x.entries, key)
	x.recency.Remove(entry.elem)
	x.mu.Unlock()

	x.notify([]*cacheEntry{entry})
	return true
}

// Contains reports whether key is cached without refreshing its recency.
func (x *Cache) Contains(key string) bool {
	x.mu.Lock()
	_, ok := x.entries[key]
	x.mu.Unlock()
	return ok
}

// Refs returns the reference count for key, zero when absent.
func (x *Cache) Refs(key string) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	if entry, ok := x.entries[key]; ok {
		return entry.refs
	}
	return 0
}

// Len returns the number of cached entries.
func (x *Cache) Len() int {
	x.mu.Lock()
	l := len(x.entries)
	x.mu.Unlock()
	return l
}

// Capacity returns the configured bound.
func (x *Cache) Capacity() int {
	return x.capacity
}

// Keys returns a snapshot of the cached keys, most recently used first.
func (x *Cache) Keys() []string {
	x.mu.Lock()
	keys := make([]string, 0, len(x.entries))
	for elem := x.recency.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*cacheEntry).key)
	}
	x.mu.Unlock()
	return keys
}

// Clear removes every entry and fires the unload callback for each.
func (x *Cache) Clear() {
	x.mu.Lock()
	removed := make([]*cacheEntry, 0, len(x.entries))
	for _, entry := range x.entries {
		removed = append(removed, entry)
	}
	x.entries = make(map[string]*cacheEntry)
	x.recency.Init()
	x.mu.Unlock()

	x.notify(removed)
}

// evictLocked removes unreferenced entries while the cache is above
// capacity, selecting victims per the configured policy. When every entry
// is referenced the cache may temporarily exceed its bound. Callers must
// hold the lock; the evicted entries are returned for notification outside it.
func (x *Cache) evictLocked() []*cacheEntry {
	var evicted []*cacheEntry
	for len(x.entries) > x.capacity {
		victim := x.victimLocked()
		if victim == nil {
			break
		}
		delete(x.entries, victim.key)
		x.recency.Remove(victim.elem)
		evicted = append(evicted, victim)
	}
	return evicted
}

func (x *Cache) victimLocked() *cacheEntry {
	switch x.policy {
	case MRU:
		for elem := x.recency.Front(); elem != nil; elem = elem.Next() {
			if entry := elem.Value.(*cacheEntry); entry.refs == 0 {
				return entry
			}
		}
	case LFU:
		var victim *cacheEntry
		for elem := x.recency.Back(); elem != nil; elem = elem.Prev() {
			entry := elem.Value.(*cacheEntry)
			if entry.refs != 0 {
				continue
			}
			if victim == nil || entry.hits < victim.hits {
				victim = entry
			}
		}
		return victim
	default: // LRU
		for elem := x.recency.Back(); elem != nil; elem = elem.Prev() {
			if entry := elem.Value.(*cacheEntry); entry.refs == 0 {
				return entry
			}
		}
	}
	return nil
}

func (x *Cache) notify(entries []*cacheEntry) {
	if x.onEvict == nil {
		return
	}
	for _, entry := range entries {
		x.onEvict(entry.key, entry.asset)
	}
}
