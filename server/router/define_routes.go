// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/http/pprof"

	"codeberg.org/guidefe/guidefe/config"
	"codeberg.org/guidefe/guidefe/server/assets"
	"codeberg.org/guidefe/guidefe/server/middleware"
	"codeberg.org/guidefe/guidefe/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// It returns a *Router without middleware.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Serve specific files from the root of the 'assets' subdirectory.
	router.Handle("GET /robots.txt", fileServerHandler)

	// Serve files from subdirectories within 'assets'.
	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /img/", fileServerHandler)
	router.Handle("GET /css/", fileServerHandler)
	router.Handle("GET /js/", fileServerHandler)

	// Translation dictionaries, also consumed by remote instances.
	router.HandleFunc("GET /languages/{file}", middleware.CatchError(routes.DictionaryJSON))

	// Language switching
	router.HandleFunc("GET /language", middleware.CatchError(routes.SwitchLanguage))
	router.HandleFunc("POST /language", middleware.CatchError(routes.SwitchLanguage))

	// Clear stored preferences
	router.HandleFunc("POST /settings/reset", middleware.CatchError(routes.ResetSettings))

	// Index page routes
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))

	// Every other path is a guide page, with or without a language prefix.
	router.HandleFunc("GET /", middleware.CatchError(routes.GuidePage))

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	staticContentFS, err := fs.Sub(assets.FS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to create sub-filesystem for embedded 'assets' directory: %w", err))
	}

	fileServer := http.FileServer(http.FS(staticContentFS))
	fileServerHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "max-age=3600")
		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// Since go:embed requires rebuilding when files change, we use a per-instance
		// cache ID to ensure browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", config.Global.Instance.FileServerCacheID)
		fileServer.ServeHTTP(w, r)
	})

	return fileServerHandler
}

func registerDebugRoutes(router *Router) {
	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
}
