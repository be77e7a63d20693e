// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"codeberg.org/guidefe/guidefe/core/untrusted"
	"codeberg.org/guidefe/guidefe/server/utils"
)

// ResetSettings clears every preference cookie, including the stored
// language, and sends the visitor back to where they came from.
func ResetSettings(w http.ResponseWriter, r *http.Request) error {
	returnPath := utils.SanitizeReturnPath(utils.GetFormValue(r, "returnPath"))
	if returnPath == "" {
		returnPath = "/"
	}

	untrusted.ClearAllCookies(w, r)

	http.Redirect(w, r, returnPath, http.StatusSeeOther)

	return nil
}
