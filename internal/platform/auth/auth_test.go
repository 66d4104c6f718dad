package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{SigningKey: []byte("test-signing-key"), TokenTTL: time.Hour}
}

func TestIssueAndParseToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := IssueToken(cfg, "1", "dr.sow", "doctor", "cardiology")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "1" {
		t.Errorf("expected subject '1', got %s", claims.Subject)
	}
	if claims.Role != "doctor" {
		t.Errorf("expected role 'doctor', got %s", claims.Role)
	}
	if claims.Department != "cardiology" {
		t.Errorf("expected department 'cardiology', got %s", claims.Department)
	}
}

func TestParseToken_RejectsWrongKey(t *testing.T) {
	token, err := IssueToken(testJWTConfig(), "1", "dr.sow", "doctor", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ParseToken(JWTConfig{SigningKey: []byte("other-key")}, token)
	if err == nil {
		t.Error("expected error for token signed with a different key")
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := JWTMiddleware(testJWTConfig())(handler)(c)

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := IssueToken(cfg, "4", "cashier.ndiaye", "cashier", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error {
		if RoleFromContext(c.Request().Context()) != "cashier" {
			t.Error("expected cashier role on context")
		}
		if UserIDFromContext(c.Request().Context()) != "4" {
			t.Error("expected user id on context")
		}
		return c.NoContent(http.StatusOK)
	}

	if err := JWTMiddleware(cfg)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	newCtx := func(role string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), UserRoleKey, role)
		req = req.WithContext(ctx)
		return e.NewContext(req, httptest.NewRecorder())
	}

	if err := RequireRole("doctor")(handler)(newCtx("doctor")); err != nil {
		t.Errorf("expected doctor to pass, got %v", err)
	}
	if err := RequireRole("doctor")(handler)(newCtx("admin")); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}
	err := RequireRole("doctor")(handler)(newCtx("cashier"))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403 for cashier, got %v", err)
	}
}
