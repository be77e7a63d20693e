// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"net/url"
	"strings"
)

// SwitchURL recomputes u's path for the target language.
//
// Any recognized language prefix is stripped first, then the target code is
// prepended unless it is the default language, which lives at the bare
// path. Query string and fragment are preserved:
//
//	/fr/maps?marker=3  + en  ->  /maps?marker=3
//	/maps?marker=3     + de  ->  /de/maps?marker=3
//
// The caller is responsible for validating target against the supported
// set; SwitchURL itself treats an unknown target like any non-default code.
func (m *Manager) SwitchURL(u *url.URL, target Code) string {
	rest := m.StripPath(u.Path)

	path := rest
	if target != m.fallback {
		if rest == "/" {
			path = "/" + string(target)
		} else {
			path = "/" + string(target) + rest
		}
	}

	var b strings.Builder

	b.WriteString(path)

	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}

	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}

	return b.String()
}
