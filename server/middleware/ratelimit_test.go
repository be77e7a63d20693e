// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/guidefe/guidefe/config"
)

func TestRateLimit_Disabled(t *testing.T) {
	config.Global.Limiter.Enabled = false

	handler := Wrap(RateLimit, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 100 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 with limiter disabled, got %d", w.Code)
		}
	}
}

func TestRateLimit_Enforced(t *testing.T) {
	config.Global.Limiter.Enabled = true
	config.Global.Limiter.RequestsPerSecond = 1
	config.Global.Limiter.Burst = 2

	t.Cleanup(func() {
		config.Global.Limiter.Enabled = false
	})

	handler := Wrap(RateLimit, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.50:1234"
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		statuses = append(statuses, w.Code)
	}

	// The burst allows two requests; the third must be rejected.
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", statuses)
	}

	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", statuses)
	}
}
