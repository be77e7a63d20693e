// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
This package defines the cookie names used by this application.
*/
package cookie

type CookieName string

// Cookie names defined as constants.
//
// NOTE: We don't use the `__Host-` prefix to avoid issues on non-HTTPS
// deployments where the localhost exemption doesn't apply.
const (
	// PreferredLanguageCookie stores the visitor's saved language choice.
	// Its value must be one of the supported language codes.
	PreferredLanguageCookie CookieName = "preferred_language"

	// Presentation preference cookies, written by the client script in
	// assets/js/guide.js. The names must match what the script uses.
	ThemeCookie          CookieName = "theme"
	MapZoomCookie        CookieName = "map_zoom"
	SpoilersHiddenCookie CookieName = "spoilers_hidden"
)

// AllCookieNames defines all cookies that can be set by the user.
var AllCookieNames = []CookieName{
	PreferredLanguageCookie,
	ThemeCookie,
	MapZoomCookie,
	SpoilersHiddenCookie,
}

// IsHttpOnly reports whether a cookie should be marked HttpOnly.
//
// All of our cookies hold plain display preferences that client-side script
// in the guide pages is allowed to read.
func IsHttpOnly(CookieName) bool {
	return false
}
