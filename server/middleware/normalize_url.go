// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"codeberg.org/guidefe/guidefe/config"
)

// NormalizeURL is a middleware that handles URL normalization by:
// 1. Removing the default-language prefix (canonical pages live at bare paths).
// 2. Removing trailing slashes from URLs (except root).
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	// Check for the default-language prefix first and redirect if found
	if target, ok := defaultPrefixTarget(r); ok {
		http.Redirect(w, r, target, http.StatusMovedPermanently)

		return
	}

	// Check for trailing slash and redirect if found
	if hasTrailingSlash(r) {
		removeTrailingSlash(w, r)

		return
	}

	// No normalization needed, continue to next handler
	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slash and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	url := r.URL

	if len(url.Path) > 1 {
		url.Path = strings.TrimSuffix(url.Path, "/")
	}

	http.Redirect(w, r, url.String(), http.StatusPermanentRedirect)
}

// defaultPrefixTarget reports whether the request path carries the
// default-language prefix, and returns the canonical URL without it.
//
// Pages in the default language are served at bare paths, so "/en/map" and
// "/map" would otherwise be duplicate resources.
func defaultPrefixTarget(r *http.Request) (string, bool) {
	def := config.Global.Languages.Default
	if def == "" {
		return "", false
	}

	prefix := "/" + def

	path := r.URL.Path
	if path != prefix && path != prefix+"/" && !strings.HasPrefix(path, prefix+"/") {
		return "", false
	}

	canonicalPath := strings.TrimPrefix(path, prefix)
	if canonicalPath == "" {
		canonicalPath = "/"
	}

	// Create new URL with the prefix removed
	target, _ := url.Parse(r.URL.String())

	target.Path = canonicalPath

	return target.String(), true
}
