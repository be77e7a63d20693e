// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/guidefe/guidefe/server/middleware"
	"codeberg.org/guidefe/guidefe/server/middleware/set_request_context"
)

func (router *Router) RegisterMiddleware() {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL)                // handle trailing slashes and default-language prefix removal
	router.Use(set_request_context.WithRequestContext) // needed for everything else
	router.Use(middleware.SetResponseHeaders)          // all pages need this
	router.Use(middleware.RateLimit)                   // no-op unless enabled in the configuration
}
