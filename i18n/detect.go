// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"codeberg.org/guidefe/guidefe/core/cookie"
	"codeberg.org/guidefe/guidefe/core/untrusted"
)

// Detect returns the language for r by inspecting three signals in priority
// order:
//
//  1. the leading path segment ("/fr/maps" means French); the bare root
//     path means the default language
//  2. the saved preference cookie [cookie.PreferredLanguageCookie]
//  3. the Accept-Language header
//
// Explicit navigation outranks a saved choice, which outranks passive
// browser configuration. Anything unrecognized resolves to the fallback
// language. Detection is deterministic: the same request always yields the
// same code.
//
// If r is nil, Detect returns the fallback language.
func (m *Manager) Detect(r *http.Request) Code {
	if r == nil {
		return m.fallback
	}

	path := r.URL.Path

	// The bare root is the default-language home page.
	if path == "" || path == "/" {
		return m.fallback
	}

	if c, ok := m.PathLanguage(path); ok {
		return c
	}

	if pref := untrusted.GetCookie(r, cookie.PreferredLanguageCookie); pref != "" {
		c := Code(strings.ToLower(pref))
		if m.IsSupported(c) {
			return c
		}
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		if c, ok := m.matchLocale(al); ok {
			return c
		}
	}

	return m.fallback
}

// matchLocale matches the visitor's primary locale tag against the
// supported set.
//
// An exact match wins. Otherwise the tag and each supported code are
// compared on their base subtag (everything before the first "-"), which
// covers a prefix match in either direction: "pt" matches "pt-br" and
// "es-mx" matches "es". Enumeration order of the supported set is the
// tie-break, so a locale like "es-419" resolves to "es" rather than
// "es-la"; that mirrors the historical behavior of the guide and is kept
// as-is.
func (m *Manager) matchLocale(acceptLanguage string) (Code, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	locale := strings.ToLower(tags[0].String())

	for _, c := range m.supported {
		if string(c) == locale {
			return c, true
		}
	}

	base, _, _ := strings.Cut(locale, "-")

	for _, c := range m.supported {
		cBase, _, _ := strings.Cut(string(c), "-")
		if cBase == base {
			return c, true
		}
	}

	return "", false
}
