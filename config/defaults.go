// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default cache TTL in minutes.
	defaultCacheTTLMinutes = 60
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 30
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 60

	// Default limiter allowance.
	defaultLimiterRequestsPerSecond = 10
	defaultLimiterBurst             = 30
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8282"

	cfg.Languages.Default = "en"
	cfg.Languages.Supported = []string{"en", "fr", "de", "ru", "es", "es-la", "ja", "ko", "pt-br", "zh"}
	cfg.Languages.Preload = false

	cfg.Cache.Enabled = false
	cfg.Cache.Size = 100
	cfg.Cache.TTL = defaultCacheTTLMinutes * time.Minute

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Instance.RepoURL = "https://codeberg.org/guidefe/guidefe"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Limiter.Enabled = false
	cfg.Limiter.RequestsPerSecond = defaultLimiterRequestsPerSecond
	cfg.Limiter.Burst = defaultLimiterBurst
}
