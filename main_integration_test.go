// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/guidefe/guidefe/config"
	"codeberg.org/guidefe/guidefe/core/fetch"
	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/middleware/set_request_context"
	"codeberg.org/guidefe/guidefe/server/router"
	"codeberg.org/guidefe/guidefe/server/routes"
)

var setupOnce sync.Once

// setupServer wires the full application against the embedded content,
// the same way run() does, minus the listener.
func setupServer(t *testing.T) http.Handler {
	t.Helper()

	setupOnce.Do(func() {
		config.Global.SetDefaults()
		fetch.Setup()

		languagesFS, err := fs.Sub(embeddedContent, "languages")
		if err != nil {
			t.Fatalf("failed to open embedded dictionaries: %v", err)
		}

		manager := i18n.NewManager(nil, "", i18n.FSSource(languagesFS))

		contentFS, err := fs.Sub(embeddedContent, "content")
		if err != nil {
			t.Fatalf("failed to open embedded guide pages: %v", err)
		}

		routes.Setup(manager, contentFS)
		set_request_context.Init(manager)
	})

	r := router.NewRouter()
	r.DefineRoutes()
	r.RegisterMiddleware()

	return r
}

func doRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return w
}

func TestServerServesLocalizedPages(t *testing.T) {
	handler := setupServer(t)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "en", lang)

	w = doRequest(handler, httptest.NewRequest(http.MethodGet, "/fr/bosses", nil))

	require.Equal(t, http.StatusOK, w.Code)

	doc, err = goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	lang, _ = doc.Find("html").Attr("lang")
	assert.Equal(t, "fr", lang)
	assert.Equal(t, "Boss", doc.Find("h1").First().Text())
}

func TestServerDetectsCookiePreference(t *testing.T) {
	handler := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/bosses", nil)
	req.AddCookie(&http.Cookie{Name: "preferred_language", Value: "fr"})

	w := doRequest(handler, req)

	require.Equal(t, http.StatusOK, w.Code)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "fr", lang, "a stored preference must localize bare paths")
}

func TestServerNormalizesURLs(t *testing.T) {
	handler := setupServer(t)

	tests := []struct {
		name     string
		target   string
		code     int
		location string
	}{
		{
			name:     "Default language prefix is removed",
			target:   "/en/items",
			code:     http.StatusMovedPermanently,
			location: "/items",
		},
		{
			name:     "Default language root",
			target:   "/en",
			code:     http.StatusMovedPermanently,
			location: "/",
		},
		{
			name:     "Trailing slash is removed",
			target:   "/items/",
			code:     http.StatusPermanentRedirect,
			location: "/items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(handler, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestServerServesDictionaries(t *testing.T) {
	handler := setupServer(t)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/languages/fr.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "Rechercher")
}

func TestServerSwitchesLanguage(t *testing.T) {
	handler := setupServer(t)

	form := url.Values{"lang": {"ja"}, "returnPath": {"/items"}}
	req := httptest.NewRequest(http.MethodPost, "/language", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := doRequest(handler, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/ja/items", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "preferred_language", cookies[0].Name)
	assert.Equal(t, "ja", cookies[0].Value)
}

func TestServerServesStaticAssets(t *testing.T) {
	handler := setupServer(t)

	for _, target := range []string{"/css/style.css", "/js/guide.js", "/robots.txt"} {
		w := doRequest(handler, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, "asset %q must be served", target)
	}
}

func TestServerRendersErrorPage(t *testing.T) {
	handler := setupServer(t)

	w := doRequest(handler, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}
