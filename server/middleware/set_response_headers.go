// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"fmt"
	"maps"
	"net/http"
	"strings"

	"codeberg.org/guidefe/guidefe/config"
)

var (
	// baseHeaders defines the default headers to be set in responses.
	//
	// Guidefe-Version and Guidefe-Revision are added dynamically in SetResponseHeaders.
	//
	// NOTE: we intentionally don't set CORP or HSTS headers.
	baseHeaders = http.Header{
		"Referrer-Policy":        {"no-referrer"},
		"X-Frame-Options":        {"DENY"},
		"X-Content-Type-Options": {"nosniff"},
		"Permissions-Policy":     {strings.Join(defaultPermissionsPolicy, ", ")},
		"X-Powered-By":           {"a dog-eared strategy guide"},
	}

	// contentSecurityPolicy is static; guide pages only load same-origin resources.
	contentSecurityPolicy = strings.Join([]string{
		"base-uri 'self'",
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"font-src 'self'",
		"connect-src 'self'",
		"script-src 'self'",
		"img-src 'self' data:",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ") + ";"

	// defaultPermissionsPolicy defines the default Permissions-Policy header.
	defaultPermissionsPolicy = []string{
		"accelerometer=()",
		"ambient-light-sensor=()",
		"battery=()",
		"camera=()",
		"display-capture=()",
		"document-domain=()",
		"encrypted-media=()",
		"execution-while-not-rendered=()",
		"execution-while-out-of-viewport=()",
		"geolocation=()",
		"gyroscope=()",
		"magnetometer=()",
		"microphone=()",
		"midi=()",
		"navigation-override=()",
		"payment=()",
		"publickey-credentials-get=()",
		"screen-wake-lock=()",
		"sync-xhr=()",
		"usb=()",
		"web-share=()",
		"xr-spatial-tracking=()",
	}
)

// SetResponseHeaders adds default headers to HTTP responses.
func SetResponseHeaders(w http.ResponseWriter, r *http.Request, next http.Handler) {
	headers := w.Header()

	maps.Insert(headers, maps.All(baseHeaders))

	if config.Global.Development.InDevelopment {
		invalidateCacheInDevelopment(headers)
	}

	setCacheControl(headers, r.URL.Path)

	headers.Set("Guidefe-Version", config.BuildVersion)
	headers.Set("Guidefe-Revision", config.Global.Build.Revision())
	headers.Set("Content-Security-Policy", contentSecurityPolicy)

	next.ServeHTTP(w, r)
}

// for `invalidateCache`
var firstDevResponse = true

// clear cache in development
func invalidateCacheInDevelopment(headers http.Header) {
	if firstDevResponse {
		firstDevResponse = false

		headers.Set("Clear-Site-Data", "cache")
	}
}

// setCacheControl sets appropriate cache control headers for responses.
func setCacheControl(headers http.Header, path string) {
	var cacheDuration string

	switch {
	// JavaScript and CSS get a moderate cache time (1 week)
	case strings.HasPrefix(path, "/js/") || strings.HasPrefix(path, "/css/"):
		cacheDuration = "max-age=604800"

	// Images can be cached for 2 weeks
	case strings.HasPrefix(path, "/img/"):
		cacheDuration = "max-age=1209600"

	// Dictionary and text files get moderate caching (1 day)
	case strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".json"):
		cacheDuration = "max-age=86400"

	// Guide pages revalidate on the configured schedule.
	default:
		cacheDuration = fmt.Sprintf(
			"public, max-age=%d, stale-while-revalidate=%d",
			int(config.Global.HTTPCache.MaxAge.Seconds()),
			int(config.Global.HTTPCache.StaleWhileRevalidate.Seconds()),
		)
	}

	headers.Set("Cache-Control", cacheDuration)
}
