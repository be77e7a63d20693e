// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/guidefe/guidefe/i18n"
	"codeberg.org/guidefe/guidefe/server/request_context"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req := httptest.NewRequest("GET", "/test", nil)

	manager := i18n.NewManager(nil, "", i18n.SourceFunc(
		func(context.Context, i18n.Code) ([]byte, error) {
			return []byte(`{}`), nil
		},
	))

	// Add request context
	ctx := request_context.WithRequestContext(req.Context(), req, manager)
	req = req.WithContext(ctx)

	return req
}

// TestCatchError_Success tests CatchError when handler succeeds.
func TestCatchError_Success(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "success"}`))
		return nil
	})
	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if body := rr.Body.String(); body != `{"status": "success"}` {
		t.Errorf("Expected body %q, got %q", `{"status": "success"}`, body)
	}
	if ctx := request_context.FromRequest(req); ctx.RequestError != nil {
		t.Errorf("Expected no error in context, got %v", ctx.RequestError)
	}
}

// TestCatchError_HandlerError tests CatchError when handler returns an error.
func TestCatchError_HandlerError(t *testing.T) {
	testError := errors.New("test handler error")
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		return testError
	})
	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, rr.Result().StatusCode, 500, "expect 500 status code")

	ctx := request_context.FromRequest(req)
	if ctx.RequestError == nil || ctx.RequestError.Error() != testError.Error() {
		t.Errorf("Expected error %q in context, got %v", testError, ctx.RequestError)
	}
}

// TestCatchError_NotFound tests that a handler-written 404 is replaced with
// the themed error page status.
func TestCatchError_NotFound(t *testing.T) {
	handler := CatchError(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNotFound)
		return nil
	})
	req := createTestRequest(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode, "expect 404 status code")
}
