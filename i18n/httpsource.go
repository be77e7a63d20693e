// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"net/url"
	"strings"

	"codeberg.org/guidefe/guidefe/core/fetch"
)

// HTTPSource fetches dictionaries from a remote origin at
// <base>/languages/<code>.json, through the caching fetch layer.
//
// Used when an instance serves guide pages but the translation files live
// on a separate static host.
func HTTPSource(baseURL string) Source {
	base := strings.TrimSuffix(baseURL, "/")

	return SourceFunc(func(ctx context.Context, code Code) ([]byte, error) {
		return fetch.GetJSON(ctx, base+"/languages/"+url.PathEscape(string(code))+".json")
	})
}
