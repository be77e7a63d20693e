// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TranslateAttr tags an element as a translation target; its value is the
// translation key.
const TranslateAttr = "data-translate"

// Metadata keys with a special meaning: when present in the resolved
// dictionaries they also update the document title and description tags.
const (
	PageTitleKey       = "page_title"
	PageDescriptionKey = "page_description"
)

// Apply rewrites every tagged element of doc to the resolved language.
//
// The text slot is chosen by element kind: submit/button inputs get their
// value attribute, other inputs and textareas their placeholder, elements
// carrying an aria-label that attribute, and everything else its text
// content. Elements whose key resolves nowhere show the key itself.
//
// Apply is idempotent: the written text depends only on the dictionaries,
// so a second pass with the same Resolved changes nothing.
func Apply(doc *goquery.Document, res Resolved) {
	doc.Find("[" + TranslateAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		key, _ := sel.Attr(TranslateAttr)
		if key == "" {
			return
		}

		text := res.Lookup(key)

		switch name := goquery.NodeName(sel); {
		case name == "input" && isButtonInput(sel):
			sel.SetAttr("value", text)
		case name == "input" || name == "textarea":
			sel.SetAttr("placeholder", text)
		case hasAttr(sel, "aria-label"):
			sel.SetAttr("aria-label", text)
		default:
			sel.SetText(text)
		}
	})

	applyMetadata(doc, res)
}

// applyMetadata refreshes the document title and description tags from the
// well-known metadata keys, when the dictionaries define them.
func applyMetadata(doc *goquery.Document, res Resolved) {
	if title, ok := res.lookupExisting(PageTitleKey); ok {
		doc.Find("title").SetText(title)
		setMetaContent(doc, `meta[property="og:title"]`, title)
	}

	if desc, ok := res.lookupExisting(PageDescriptionKey); ok {
		setMetaContent(doc, `meta[name="description"]`, desc)
		setMetaContent(doc, `meta[property="og:description"]`, desc)
	}
}

func setMetaContent(doc *goquery.Document, selector, content string) {
	doc.Find(selector).SetAttr("content", content)
}

func isButtonInput(sel *goquery.Selection) bool {
	t, _ := sel.Attr("type")

	switch strings.ToLower(t) {
	case "submit", "button":
		return true
	default:
		return false
	}
}

func hasAttr(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)

	return ok
}
