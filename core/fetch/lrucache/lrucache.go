// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used
(LRU) cache for byte values. Keys are strings. The cache evicts the least
recently used entry when it reaches capacity. When created with compression
enabled via [NewLRUCache], values may be stored zstd-compressed and are
transparently decompressed by [LRUCache.Get] and [LRUCache.Peek].
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// LRUCache is a fixed-capacity, least-recently-used cache that is safe for
// concurrent use. Instances must be constructed with [NewLRUCache]; the
// zero value is not ready for use.
type LRUCache struct {
	size            int                      // Maximum capacity of the cache (number of entries)
	evictList       *list.List               // A doubly-linked list to manage the eviction order
	items           map[string]*list.Element // Maps string keys to their corresponding linked-list elements
	lock            sync.RWMutex             // For thread-safe operations
	compressEnabled bool                     // Whether transparent compression is enabled
	zstdEnc         *zstd.Encoder            // Reusable zstd encoder for block operations
	zstdDec         *zstd.Decoder            // Reusable zstd decoder for block operations
}

// cacheEntry holds the key/value pair stored in each linked-list element.
type cacheEntry struct {
	key        string
	value      []byte
	compressed bool
}

// NewLRUCache creates a new cache with the specified maximum size.
//
// If compress is true, values are stored in a compressed form when this
// reduces space and are transparently decompressed on retrieval.
//
// It returns an error if size is not a positive integer.
func NewLRUCache(size int, compress bool) (*LRUCache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &LRUCache{
		size:            size,
		evictList:       list.New(),
		items:           make(map[string]*list.Element),
		compressEnabled: compress,
	}

	if compress {
		// Create reusable encoder/decoder for block (stateless) operations.
		// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add adds or updates the value for key.
//
// If the key exists, it becomes the most recently used.
// If the cache is at capacity, the least recently used item is evicted.
// Add reports whether an eviction occurred.
func (c *LRUCache) Add(key string, value []byte) bool {
	// Prepare (and possibly compress) the value before acquiring the lock.
	storedVal, compressed := c.prepareValue(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	// If the item already exists, move it to the front as "most recently used" and update its value.
	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)

		if cacheEnt, ok := ent.Value.(*cacheEntry); ok {
			cacheEnt.value = storedVal
			cacheEnt.compressed = compressed
		}

		return false
	}

	// Otherwise, create a new entry and place it at the front.
	c.items[key] = c.evictList.PushFront(&cacheEntry{
		key:        key,
		value:      storedVal,
		compressed: compressed,
	})

	// If we've exceeded our capacity, remove the oldest item from the back of the list.
	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the value for key and marks it as most recently used.
//
// The second result reports whether the key was found. The returned slice
// is a copy (or a fresh decompression), so callers cannot mutate the
// cached data.
func (c *LRUCache) Get(key string) ([]byte, bool) {
	// Lock for write since we will move the element to the front.
	c.lock.Lock()

	ent, ok := c.items[key]
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(ent)

	cacheEnt, ok := ent.Value.(*cacheEntry)
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	// Copy fields needed for decompression and release the lock early.
	stored := cacheEnt.value
	compressed := cacheEnt.compressed

	c.lock.Unlock()

	return c.decompressValue(stored, compressed)
}

// Peek retrieves the value for key without modifying the LRU order.
//
// The second result reports whether the key was found.
func (c *LRUCache) Peek(key string) ([]byte, bool) {
	c.lock.RLock()

	ent, ok := c.items[key]
	if !ok {
		c.lock.RUnlock()

		return nil, false
	}

	cacheEnt, ok := ent.Value.(*cacheEntry)
	if !ok {
		c.lock.RUnlock()

		return nil, false
	}

	stored := cacheEnt.value
	compressed := cacheEnt.compressed

	c.lock.RUnlock()

	return c.decompressValue(stored, compressed)
}

// Remove deletes the entry associated with key from the cache.
//
// Remove reports whether the key was present and removed.
func (c *LRUCache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)

		return true
	}

	return false
}

// Keys returns a slice of all keys in the cache, from the oldest to the newest.
func (c *LRUCache) Keys() []string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	keys := make([]string, len(c.items))
	index := 0

	// The back of the list is the oldest entry.
	for ent := c.evictList.Back(); ent != nil; ent = ent.Prev() {
		if cacheEnt, ok := ent.Value.(*cacheEntry); ok {
			keys[index] = cacheEnt.key
			index++
		}
	}

	return keys
}

// Len returns the current number of items in the cache.
func (c *LRUCache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

// removeOldest removes the oldest item from both the linked list and the map.
func (c *LRUCache) removeOldest() {
	ent := c.evictList.Back()
	if ent != nil {
		c.removeElement(ent)
	}
}

// removeElement removes a specific list element from the eviction list and
// deletes it from the map.
func (c *LRUCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)

	if kv, ok := e.Value.(*cacheEntry); ok {
		delete(c.items, kv.key)
	}
}

// prepareValue compresses value when compression is enabled and actually
// reduces size. Uncompressed values are copied so callers cannot mutate
// the cache.
//
// This performs the heavy work of compression and is safe to call without
// holding the lock, as the zstd Encoder supports concurrent EncodeAll calls.
func (c *LRUCache) prepareValue(value []byte) (stored []byte, compressed bool) {
	if len(value) == 0 {
		return value, false
	}

	if c.compressEnabled {
		compressedBytes := c.zstdEnc.EncodeAll(value, nil)
		if len(compressedBytes) < len(value) {
			return compressedBytes, true
		}
	}

	copied := make([]byte, len(value))
	copy(copied, value)

	return copied, false
}

// decompressValue returns the actual value to callers, performing
// decompression if needed. Uncompressed values are returned as a copy.
// If decompression fails (which should be extremely rare), the value is
// considered unavailable.
func (c *LRUCache) decompressValue(stored []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		if stored == nil {
			return nil, true
		}

		copied := make([]byte, len(stored))
		copy(copied, stored)

		return copied, true
	}

	if c.zstdDec == nil {
		return nil, false
	}

	decoded, err := c.zstdDec.DecodeAll(stored, nil)
	if err != nil {
		return nil, false
	}

	return decoded, true
}
