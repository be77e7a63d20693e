// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const applyFixture = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Untranslated</title>
<meta name="description" content="Untranslated description">
<meta property="og:title" content="Untranslated">
<meta property="og:description" content="Untranslated description">
</head>
<body>
<h1 data-translate="heading">Heading</h1>
<span data-translate="missing_key">old text</span>
<input type="search" data-translate="search_placeholder" placeholder="old">
<input type="submit" data-translate="search_submit" value="old">
<textarea data-translate="notes_placeholder">ignored</textarea>
<div data-translate="language_label" aria-label="old"><a href="/">keep me</a></div>
</body>
</html>`

func applyTestResolved() Resolved {
	return Resolved{
		Current: Dictionary{
			"page_title":         "Guide",
			"page_description":   "A guide.",
			"heading":            "Bienvenue",
			"search_placeholder": "Chercher...",
			"search_submit":      "Chercher",
			"notes_placeholder":  "Notes",
			"language_label":     "Langue",
		},
		Fallback: Dictionary{},
	}
}

func parseFixture(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

func TestApply(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, applyFixture)

	Apply(doc, applyTestResolved())

	assert.Equal(t, "Bienvenue", doc.Find("h1").Text(), "regular elements get their text replaced")

	assert.Equal(t, "missing_key", doc.Find("span").Text(), "unknown keys show the raw key")

	placeholder, _ := doc.Find(`input[type="search"]`).Attr("placeholder")
	assert.Equal(t, "Chercher...", placeholder, "inputs are translated through the placeholder attribute")

	value, _ := doc.Find(`input[type="submit"]`).Attr("value")
	assert.Equal(t, "Chercher", value, "submit inputs are translated through the value attribute")

	textareaPlaceholder, _ := doc.Find("textarea").Attr("placeholder")
	assert.Equal(t, "Notes", textareaPlaceholder)

	ariaLabel, _ := doc.Find("div[aria-label]").Attr("aria-label")
	assert.Equal(t, "Langue", ariaLabel, "aria-labelled containers keep their children")
	assert.Equal(t, 1, doc.Find("div[aria-label] a").Length(), "child anchors must survive")
}

func TestApplyMetadata(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, applyFixture)

	Apply(doc, applyTestResolved())

	assert.Equal(t, "Guide", doc.Find("title").Text())

	ogTitle, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	assert.Equal(t, "Guide", ogTitle)

	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, "A guide.", desc)

	ogDesc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	assert.Equal(t, "A guide.", ogDesc)
}

func TestApplyMetadataSkippedWhenUndefined(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, applyFixture)

	res := applyTestResolved()
	delete(res.Current, "page_title")
	delete(res.Current, "page_description")

	Apply(doc, res)

	assert.Equal(t, "Untranslated", doc.Find("title").Text(), "title stays when no dictionary defines page_title")
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, applyFixture)
	res := applyTestResolved()

	Apply(doc, res)

	once, err := doc.Html()
	require.NoError(t, err)

	Apply(doc, res)

	twice, err := doc.Html()
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}
