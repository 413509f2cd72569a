package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", fmt.Errorf("%w: full name is required", domain.ErrValidation), http.StatusBadRequest, ""},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "bad field"), http.StatusUnprocessableEntity, "bad field"},
		{"unexpected", errors.New("mongo down"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			handler := NewHTTPErrorHandler(zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if tc.msg != "" && resp["error"] != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, resp["error"])
			}
		})
	}
}

// Internal failures must never leak their cause to the client.
func TestHTTPErrorHandler_NoInternalLeak(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("dial tcp 10.0.0.5:27017: connection refused"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal cause leaked: %q", resp["error"])
	}
}
