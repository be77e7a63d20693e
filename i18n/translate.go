// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import "strings"

// Vars holds placeholder substitutions for translated strings.
type Vars map[string]string

// Resolved is the dictionary pair for a page render: the active language's
// dictionary and the fallback dictionary behind it.
type Resolved struct {
	Current  Dictionary
	Fallback Dictionary
}

// Lookup resolves key to its translated text.
//
// The active dictionary wins, then the fallback dictionary, and finally the
// key itself: a translation is never silently blank.
func (r Resolved) Lookup(key string) string {
	if v, ok := r.Current[key]; ok {
		return v
	}

	if v, ok := r.Fallback[key]; ok {
		return v
	}

	return key
}

// lookupExisting is Lookup without the raw-key fallback. The second result
// reports whether either dictionary actually contains the key.
func (r Resolved) lookupExisting(key string) (string, bool) {
	if v, ok := r.Current[key]; ok {
		return v, true
	}

	if v, ok := r.Fallback[key]; ok {
		return v, true
	}

	return "", false
}

// T resolves key and substitutes {{name}} placeholders from vars.
//
// Substitution is literal text replacement: placeholders without a matching
// var are left as-is, and a missing key resolves to the key itself.
func (r Resolved) T(key string, vars Vars) string {
	text := r.Lookup(key)

	if len(vars) == 0 || !strings.Contains(text, "{{") {
		return text
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}

	return strings.NewReplacer(pairs...).Replace(text)
}
