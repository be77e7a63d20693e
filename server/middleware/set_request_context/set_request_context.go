// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/request_context"
)

var manager *i18n.Manager

// Init stores the language manager used to resolve request languages.
//
// Must be called before the middleware handles traffic.
func Init(m *i18n.Manager) {
	manager = m
}

// WithRequestContext is a middleware that attaches a RequestContext to each HTTP request.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), r, manager)))
}
