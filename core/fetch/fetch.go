// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package fetch retrieves JSON resources from the remote dictionary origin.

Responses are logged as audit spans and, when enabled in the configuration,
cached in a fixed-size LRU with a TTL so a busy instance doesn't hammer the
origin for the same dictionary.
*/
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"codeberg.org/guidefe/guidefe/core/audit"
	"codeberg.org/guidefe/guidefe/core/idgen"
	"codeberg.org/guidefe/guidefe/server/utils"
)

var (
	errInvalidJSON      = errors.New("response contained invalid JSON")
	errUnexpectedStatus = errors.New("unexpected response status")
)

// userAgent identifies this instance to the dictionary origin.
const userAgent = "guidefe"

// GetJSON performs a GET request for url and returns the response body,
// which must be valid JSON.
//
// Successful responses may be served from and stored in the response cache.
// A non-2xx status, a network error, or a body that is not JSON all return
// an error; the caller decides how to degrade.
func GetJSON(ctx context.Context, url string) ([]byte, error) {
	if body, ok := cachedResponse(url); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := send(ctx, req)
	if err != nil {
		return nil, err
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d for %s", errUnexpectedStatus, statusCode, url)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s", errInvalidJSON, url)
	}

	storeResponse(url, body)

	return body, nil
}

// send executes the HTTP request inside an audit span and returns the body
// and status code.
func send(ctx context.Context, req *http.Request) (_ []byte, _ int, err error) {
	span := audit.Span{
		Destination: audit.ToOrigin,
		RequestID:   idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	defer func() { span.Error = err }()

	_ = span.Begin(ctx)
	defer span.End() // in case of error

	resp, err := utils.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	span.BodySize = len(body)

	span.End()
	span.Log()

	return body, resp.StatusCode, nil
}
