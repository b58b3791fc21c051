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

	"github.com/fintrack/finance-api/internal/core/domain"
)

func handleError(t *testing.T, err error, production bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), production)(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrZeroBudgetAmount, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrTokenMalformed, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrBudgetNotFound, http.StatusNotFound},
		{domain.ErrGoalNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
	}
	for _, tc := range cases {
		rec := handleError(t, tc.err, false)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["success"] != false {
			t.Fatalf("%v: expected success=false, got %+v", tc.err, body)
		}
	}
}

func TestHTTPErrorHandler_ValidationMessagePassedThrough(t *testing.T) {
	rec := handleError(t, fmt.Errorf("%w: name is required", domain.ErrValidation), false)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "validation failed: name is required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestHTTPErrorHandler_EchoErrorsKeepTheirStatus(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"), false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_ProductionHidesDetail(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	rec := handleError(t, cause, true)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "internal server error" {
		t.Fatalf("production message leaked detail: %v", body["message"])
	}

	rec = handleError(t, cause, false)
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] == "internal server error" {
		t.Fatalf("development message should include detail")
	}
}
