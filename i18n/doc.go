// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n resolves the language of a guide page and rewrites its content.

A [Manager] owns the supported language set and the dictionary cache. It is
constructed once at startup and passed to whatever needs translations; there
is no package-level singleton.

# Resolution

The active language for a request is decided by three ordered signals, first
match wins: the leading path segment ("/fr/maps"), the saved preference
cookie, and the Accept-Language header. Anything unrecognized falls back to
the default language.

# Dictionaries

Each language has a flat JSON dictionary mapping translation keys to
translated strings, fetched lazily from a [Source] and cached for the
lifetime of the process. A failed fetch degrades to the fallback language's
dictionary, and ultimately to an empty one; translation lookups then show
the raw key instead of failing the page.

Translated strings may contain {{name}} placeholders that are substituted
literally at lookup time:

	res.T("greeting", i18n.Vars{"name": "Maelle"})

# Applying to HTML

[Apply] rewrites every element of a parsed document that carries a
data-translate attribute, choosing the text slot (content, value,
placeholder or aria-label) by element kind, and refreshes the document
metadata from the page_title and page_description keys.
*/
package i18n
