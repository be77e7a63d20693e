// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes contains the HTTP handlers for guide pages, translation
dictionaries and language switching.

Handlers follow the `func(w, r) error` shape and are wrapped by
middleware.CatchError, which buffers output and renders the themed error
page for unhandled failures.
*/
package routes

import (
	"io/fs"

	"codeberg.org/guidefe/guidefe/i18n"
)

var (
	manager   *i18n.Manager
	contentFS fs.FS
)

// Setup injects the language manager and the guide page file system.
//
// Called once from main before the server starts accepting requests.
func Setup(m *i18n.Manager, content fs.FS) {
	manager = m
	contentFS = content
}
