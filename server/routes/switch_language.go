// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/core/cookie"
	"codeberg.org/guidefe/guidefe/core/untrusted"
	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/request_context"
	"codeberg.org/guidefe/guidefe/server/utils"
)

// SwitchLanguage changes the visitor's language.
//
// It expects a "lang" parameter and an optional "returnPath" pointing at the
// page the visitor came from. On success the preference cookie is stored and
// the visitor is redirected to the same page under the new language.
// An unsupported code is logged and the visitor is sent back unchanged.
func SwitchLanguage(w http.ResponseWriter, r *http.Request) error {
	target := i18n.Code(strings.ToLower(utils.GetFormValue(r, "lang")))

	returnPath := utils.SanitizeReturnPath(utils.GetFormValue(r, "returnPath"))
	if returnPath == "" {
		returnPath = "/"
	}

	if !manager.IsSupported(target) {
		log.Warn().
			Str("lang", string(target)).
			Msg("Ignoring switch to unsupported language")

		http.Redirect(w, r, returnPath, http.StatusSeeOther)

		return nil
	}

	if target == request_context.FromRequest(r).Lang {
		// Already viewing this language; nothing to store.
		http.Redirect(w, r, returnPath, http.StatusSeeOther)

		return nil
	}

	returnURL, err := url.Parse(returnPath)
	if err != nil {
		returnURL = &url.URL{Path: "/"}
	}

	untrusted.SetCookie(w, r, cookie.PreferredLanguageCookie, string(target))

	http.Redirect(w, r, manager.SwitchURL(returnURL, target), http.StatusSeeOther)

	return nil
}
