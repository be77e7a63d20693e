// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package fetch

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/config"
	"codeberg.org/guidefe/guidefe/core/fetch/lrucache"
)

var cache *lrucache.LRUCache

// cachedItem represents a cached response body along with its expiration time.
type cachedItem struct {
	Body      []byte
	ExpiresAt time.Time
}

// Setup initializes the response cache based on parameters in the global
// configuration.
//
// If caching is disabled in the configuration, it skips initialization and
// every GetJSON hits the origin.
func Setup() {
	if !config.Global.Cache.Enabled {
		log.Info().
			Msg("Origin response cache is disabled, skipping cache initialization")

		return
	}

	var err error

	// Dictionary JSON compresses well, so store entries zstd-compressed.
	cache, err = lrucache.NewLRUCache(config.Global.Cache.Size, true)
	if err != nil {
		panic(fmt.Sprintf("failed to create cache: %v", err))
	}

	log.Info().
		Int("size", config.Global.Cache.Size).
		Msg("Initialized origin response cache")
}

func cacheKey(url string) string {
	hasher := fnv.New32()

	_, _ = hasher.Write([]byte(url))

	return strconv.FormatUint(uint64(hasher.Sum32()), 16)
}

// cachedResponse returns a fresh cached body for url, if one exists.
// Expired entries are removed on the way out.
func cachedResponse(url string) ([]byte, bool) {
	if cache == nil {
		return nil, false
	}

	key := cacheKey(url)

	raw, found := cache.Get(key)
	if !found {
		return nil, false
	}

	var item cachedItem
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&item); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to decode cached item; removing")
		cache.Remove(key)

		return nil, false
	}

	if !time.Now().Before(item.ExpiresAt) {
		cache.Remove(key)

		return nil, false
	}

	return item.Body, true
}

// storeResponse caches body for url with the configured TTL.
func storeResponse(url string, body []byte) {
	if cache == nil {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cachedItem{
		Body:      body,
		ExpiresAt: time.Now().Add(config.Global.Cache.TTL),
	}); err != nil {
		// Log the error but don't fail the request.
		log.Warn().Err(err).Msg("Failed to serialize item for cache")

		return
	}

	cache.Add(cacheKey(url), buf.Bytes())
}
