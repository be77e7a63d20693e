// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	gopath "path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/request_context"
)

// GuidePage serves a guide page, localized for the request language.
//
// The same handler serves bare paths ("/bosses") and language-prefixed
// paths ("/fr/bosses"); both map to the same source file, and the language
// resolved during request context setup decides which dictionary is applied.
func GuidePage(w http.ResponseWriter, r *http.Request) error {
	lang := request_context.FromRequest(r).Lang

	rel := pageFile(manager.StripPath(r.URL.Path))
	if rel == "" {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	raw, err := fs.ReadFile(contentFS, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.WriteHeader(http.StatusNotFound)

			return nil
		}

		return fmt.Errorf("failed to read page %s: %w", rel, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse page %s: %w", rel, err)
	}

	res := manager.Resolve(r.Context(), lang)

	i18n.Apply(doc, res)
	setDocumentLanguage(doc, lang)
	rewriteSwitchLinks(doc, r, lang)

	html, err := doc.Html()
	if err != nil {
		return fmt.Errorf("failed to serialize page %s: %w", rel, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err = io.WriteString(w, html)

	return err
}

// IndexPage serves the guide's landing page.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	return GuidePage(w, r)
}

// pageFile maps a language-stripped URL path to a file under the content
// directory. Returns "" for paths that escape it.
func pageFile(path string) string {
	p := strings.Trim(gopath.Clean(path), "/")
	if p == "" || p == "." {
		p = "index"
	}

	p += ".html"

	if !fs.ValidPath(p) {
		return ""
	}

	return p
}

// setDocumentLanguage keeps the html lang attribute in sync with the
// language the page was rendered in.
func setDocumentLanguage(doc *goquery.Document, lang i18n.Code) {
	doc.Find("html").SetAttr("lang", string(lang))
}

// rewriteSwitchLinks points each language switcher anchor at the current
// page in that anchor's language. The anchor for the active language is
// marked so the stylesheet can highlight it.
func rewriteSwitchLinks(doc *goquery.Document, r *http.Request, current i18n.Code) {
	doc.Find("a[data-lang]").Each(func(_ int, sel *goquery.Selection) {
		code := i18n.Code(strings.ToLower(sel.AttrOr("data-lang", "")))
		if !manager.IsSupported(code) {
			return
		}

		sel.SetAttr("href", manager.SwitchURL(r.URL, code))

		if code == current {
			sel.SetAttr("aria-current", "true")
		}
	})
}
