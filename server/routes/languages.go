// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/utils"
)

// DictionaryJSON serves the translation dictionary for a language as flat
// key/value JSON, the same shape the loader consumes.
//
// The route pattern captures the whole filename, so "en.json" arrives here
// and the extension is stripped before lookup. Unsupported or malformed
// names 404.
func DictionaryJSON(w http.ResponseWriter, r *http.Request) error {
	file := utils.GetPathVar(r, "file")

	name, ok := strings.CutSuffix(file, ".json")
	if !ok || name == "" {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	code := i18n.Code(strings.ToLower(name))
	if !manager.IsSupported(code) {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	dict := manager.Load(r.Context(), code)

	body, err := json.Marshal(dict)
	if err != nil {
		return fmt.Errorf("failed to marshal dictionary %s: %w", code, err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	_, err = w.Write(body)

	return err
}
