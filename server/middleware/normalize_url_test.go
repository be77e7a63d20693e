// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/guidefe/guidefe/config"
)

func TestNormalizeURL(t *testing.T) {
	config.Global.Languages.Default = "en"

	tests := []struct {
		name             string
		requestURL       string
		expectedStatus   int
		expectedLocation string
		shouldRedirect   bool
	}{
		{
			name:           "Root path should not redirect",
			requestURL:     "/",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:           "Path without trailing slash should not redirect",
			requestURL:     "/chapters/prologue",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Path with trailing slash should redirect",
			requestURL:       "/chapters/prologue/",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/chapters/prologue",
			shouldRedirect:   true,
		},
		{
			name:             "Default language prefix should redirect to bare path",
			requestURL:       "/en/chapters/prologue",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/chapters/prologue",
			shouldRedirect:   true,
		},
		{
			name:             "Bare default language prefix should redirect to root",
			requestURL:       "/en",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/",
			shouldRedirect:   true,
		},
		{
			name:           "Non-default language prefix should not redirect",
			requestURL:     "/fr/chapters/prologue",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:           "Path merely starting with the default code should not redirect",
			requestURL:     "/enemies",
			expectedStatus: http.StatusOK,
			shouldRedirect: false,
		},
		{
			name:             "Query parameters should be preserved in trailing slash redirect",
			requestURL:       "/chapters/prologue/?page=2&sort=desc",
			expectedStatus:   http.StatusPermanentRedirect,
			expectedLocation: "/chapters/prologue?page=2&sort=desc",
			shouldRedirect:   true,
		},
		{
			name:             "Query parameters should be preserved in prefix redirect",
			requestURL:       "/en/chapters/prologue?page=2&sort=desc",
			expectedStatus:   http.StatusMovedPermanently,
			expectedLocation: "/chapters/prologue?page=2&sort=desc",
			shouldRedirect:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a test handler that returns 200 OK
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			// Wrap with our middleware
			handler := Wrap(NormalizeURL, nextHandler)

			// Create test request
			req := httptest.NewRequest(http.MethodGet, tt.requestURL, nil)
			w := httptest.NewRecorder()

			// Execute request
			handler.ServeHTTP(w, req)

			// Check status code
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			// Check redirect location if expected
			if tt.shouldRedirect {
				location := w.Header().Get("Location")
				if location != tt.expectedLocation {
					t.Errorf("Expected location %q, got %q", tt.expectedLocation, location)
				}
			} else {
				// Should not have Location header if not redirecting
				if location := w.Header().Get("Location"); location != "" {
					t.Errorf("Expected no Location header, got %q", location)
				}
			}
		})
	}
}

func TestHasTrailingSlash(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/", false},                    // Root should not be considered as having trailing slash
		{"/bosses", false},              // No trailing slash
		{"/bosses/", true},              // Has trailing slash
		{"/chapters/act-1/maps/", true}, // Has trailing slash
		{"/chapters/act-1/maps", false}, // No trailing slash
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			result := hasTrailingSlash(req)
			if result != tt.expected {
				t.Errorf("hasTrailingSlash(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDefaultPrefixTarget(t *testing.T) {
	config.Global.Languages.Default = "en"

	tests := []struct {
		path     string
		expected bool
	}{
		{"/en/bosses", true},  // Default prefix on a page path
		{"/en/", true},        // Default prefix with trailing slash
		{"/en", true},         // Bare default prefix
		{"/enemies", false},   // Shares the code as a prefix of the segment only
		{"/fr/bosses", false}, // Different language
		{"/bosses", false},    // No prefix
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			_, result := defaultPrefixTarget(req)
			if result != tt.expected {
				t.Errorf("defaultPrefixTarget(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}
