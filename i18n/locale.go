// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Code identifies a supported UI language.
//
// Codes are lower-case BCP 47-ish tags as they appear in URLs and dictionary
// filenames, for example "en", "es-la" or "pt-br".
type Code string

// DefaultCode is the default and fallback language.
const DefaultCode Code = "en"

// DefaultSupported lists the languages the guide ships dictionaries for.
//
// Order matters: it is the tie-break when a visitor's locale prefix-matches
// more than one code (for example "es-mx" matches both "es" and "es-la";
// the first entry wins).
var DefaultSupported = []Code{
	"en", "fr", "de", "ru", "es", "es-la", "ja", "ko", "pt-br", "zh",
}

// Manager owns the supported language set and the dictionary cache.
//
// Construct with [NewManager] once at startup and inject it wherever
// translations are needed. All methods are safe for concurrent use.
type Manager struct {
	supported []Code
	fallback  Code
	loader    *loader
	logger    zerolog.Logger
}

// NewManager returns a Manager for the given supported set.
//
// The fallback code is forced into the supported set if absent. Dictionaries
// are retrieved from source on first use.
func NewManager(supported []Code, fallback Code, source Source) *Manager {
	logger := log.With().Str("sys", "i18n").Logger()

	if len(supported) == 0 {
		supported = DefaultSupported
	}

	if fallback == "" {
		fallback = DefaultCode
	}

	codes := make([]Code, 0, len(supported)+1)

	hasFallback := false

	for _, c := range supported {
		codes = append(codes, Code(strings.ToLower(string(c))))

		if codes[len(codes)-1] == fallback {
			hasFallback = true
		}
	}

	if !hasFallback {
		codes = append([]Code{fallback}, codes...)
	}

	return &Manager{
		supported: codes,
		fallback:  fallback,
		loader:    newLoader(source, fallback, logger),
		logger:    logger,
	}
}

// Supported returns a copy of the supported language codes in
// enumeration order.
func (m *Manager) Supported() []Code {
	out := make([]Code, len(m.supported))
	copy(out, m.supported)

	return out
}

// Fallback returns the default language.
func (m *Manager) Fallback() Code {
	return m.fallback
}

// IsSupported reports whether c is in the supported set.
func (m *Manager) IsSupported(c Code) bool {
	for _, s := range m.supported {
		if s == c {
			return true
		}
	}

	return false
}

// PathLanguage inspects the leading segment of an URL path and returns the
// supported code it names, if any.
func (m *Manager) PathLanguage(path string) (Code, bool) {
	seg := firstSegment(path)
	if seg == "" {
		return "", false
	}

	c := Code(strings.ToLower(seg))
	if m.IsSupported(c) {
		return c, true
	}

	return "", false
}

// StripPath removes a recognized language prefix from path, returning the
// bare page path. Paths without a language prefix are returned unchanged.
// The result always starts with "/".
func (m *Manager) StripPath(path string) string {
	c, ok := m.PathLanguage(path)
	if !ok {
		if path == "" {
			return "/"
		}

		return path
	}

	rest := strings.TrimPrefix(path, "/"+string(c))
	if rest == "" {
		return "/"
	}

	return rest
}

// firstSegment returns the first path segment without surrounding slashes.
func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")

	seg, _, _ := strings.Cut(path, "/")

	return seg
}
