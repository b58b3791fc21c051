package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

type stubTokenService struct {
	claims *ports.TokenClaims
	err    error
}

func (s *stubTokenService) Issue(userID, role string) (string, error) { return "token", nil }

func (s *stubTokenService) Verify(token string) (*ports.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runAuth(t *testing.T, tokens ports.TokenService, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return rec, Auth(tokens)(next)(c)
}

func TestAuth_SetsIdentity(t *testing.T) {
	tokens := &stubTokenService{claims: &ports.TokenClaims{UserID: "user-1", Role: domain.RoleUser}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID, gotRole string
	next := func(c echo.Context) error {
		gotUserID, _ = c.Get(CtxUserID).(string)
		gotRole, _ = c.Get(CtxRole).(string)
		return c.NoContent(http.StatusOK)
	}

	if err := Auth(tokens)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if gotUserID != "user-1" || gotRole != domain.RoleUser {
		t.Fatalf("identity not injected: %q %q", gotUserID, gotRole)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, &stubTokenService{}, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"good-token", "Basic abc"} {
		_, err := runAuth(t, &stubTokenService{}, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	_, err := runAuth(t, &stubTokenService{err: domain.ErrTokenExpired}, "Bearer old")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "token has expired" {
		t.Fatalf("expected expiry message, got %v", he.Message)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	_, err := runAuth(t, &stubTokenService{err: domain.ErrTokenMalformed}, "Bearer junk")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "invalid token" {
		t.Fatalf("expected invalid token message, got %v", he.Message)
	}
}
