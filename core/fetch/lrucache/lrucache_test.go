// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package lrucache

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewLRUCache checks the creation of a new LRUCache with both valid and invalid sizes.
func TestNewLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize_NoCompression", func(t *testing.T) {
		t.Parallel()

		cache, err := NewLRUCache(3, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache == nil {
			t.Fatal("expected cache to be initialized")
		}

		// Immediately after creation, the cache should be empty.
		if cache.Len() != 0 {
			t.Errorf("expected cache length to be 0, got %d", cache.Len())
		}
	})

	t.Run("ValidSize_WithCompression", func(t *testing.T) {
		t.Parallel()

		cache, err := NewLRUCache(3, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cache == nil {
			t.Fatal("expected cache to be initialized")
		}

		if cache.Len() != 0 {
			t.Errorf("expected cache length to be 0, got %d", cache.Len())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		t.Parallel()

		// Size 0 should fail.
		cache, err := NewLRUCache(0, false)
		if err == nil {
			t.Fatal("expected error when creating cache of size 0, got nil")
		}

		if cache != nil {
			t.Error("expected no cache to be returned on error")
		}
	})
}

// TestLRUCache_AddAndGet verifies that adding a key to the cache and retrieving it works correctly,
// and that eviction occurs once the capacity is reached.
func TestLRUCache_AddAndGet(t *testing.T) {
	t.Parallel()

	// Create a cache with capacity 2.
	cache, err := NewLRUCache(2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Add first key; eviction should not occur yet.
	evicted := cache.Add("foo", []byte("bar"))
	if evicted {
		t.Error("eviction should not occur when the cache is not full")
	}

	// Retrieve the newly added key.
	value, ok := cache.Get("foo")
	if !ok {
		t.Error("expected to retrieve value for key 'foo'")
	}

	if !bytes.Equal(value, []byte("bar")) {
		t.Errorf("expected 'bar', got %q", value)
	}

	// Add second key.
	cache.Add("hello", []byte("world"))

	if cache.Len() != 2 {
		t.Errorf("expected cache length 2, got %d", cache.Len())
	}

	// Adding a third key should cause eviction of the least recently used item.
	evicted = cache.Add("key3", []byte("value3"))
	if !evicted {
		t.Error("expected eviction when adding third key to size 2 cache")
	}

	// "foo" should be evicted because it was the oldest after the second key was used.
	_, ok = cache.Get("foo")
	if ok {
		t.Error("expected 'foo' to be evicted, but it still exists")
	}
}

// TestLRUCache_Compression verifies that compressible values survive the
// compress/decompress round trip.
func TestLRUCache_Compression(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Highly compressible payload, so the compressed form is stored.
	payload := []byte(strings.Repeat(`{"key":"value"},`, 512))

	cache.Add("dict", payload)

	got, ok := cache.Get("dict")
	if !ok {
		t.Fatal("expected to retrieve value for key 'dict'")
	}

	if !bytes.Equal(got, payload) {
		t.Error("round-tripped value differs from original")
	}
}

// TestLRUCache_GetReturnsCopy verifies that mutating a returned slice does
// not corrupt the cached value.
func TestLRUCache_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Add("k", []byte("original"))

	first, _ := cache.Get("k")
	for i := range first {
		first[i] = 'x'
	}

	second, _ := cache.Get("k")
	if !bytes.Equal(second, []byte("original")) {
		t.Errorf("cached value was mutated through a returned slice: %q", second)
	}
}

// TestLRUCache_PeekDoesNotPromote verifies that Peek leaves the LRU order alone.
func TestLRUCache_PeekDoesNotPromote(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Add("a", []byte("1"))
	cache.Add("b", []byte("2"))

	// Peek at "a"; it must remain the oldest.
	if _, ok := cache.Peek("a"); !ok {
		t.Fatal("expected to peek value for key 'a'")
	}

	cache.Add("c", []byte("3"))

	if _, ok := cache.Get("a"); ok {
		t.Error("expected 'a' to be evicted despite the earlier Peek")
	}
}
