package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func runRequest(authHeader string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := runRequest("", JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := runRequest("Bearer "+tok, JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthExpired(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{
		"sub": "1", "role": "admin", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	rec := runRequest("Bearer "+tok, JWTAuth(testSecret))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthValidTokenPassesClaims(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{
		"sub": "42", "role": "instructor", "exp": time.Now().Add(time.Hour).Unix(),
	})

	e := echo.New()
	var gotID, gotRole string
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		gotID, _ = c.Get("user_id").(string)
		gotRole, _ = c.Get("role").(string)
		return c.String(http.StatusOK, "ok")
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "42" || gotRole != "instructor" {
		t.Fatalf("claims not propagated: user_id=%q role=%q", gotID, gotRole)
	}
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{
		"sub": "7", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := runRequest("Bearer "+tok, JWTAuth(testSecret), RequireRole("admin", "instructor"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{
		"sub": "7", "role": "student", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := runRequest("Bearer "+tok, JWTAuth(testSecret), RequireRole("admin"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	e := echo.New()
	h := RequireRole("admin")(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
