package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-scheduler/internal/config"
	"github.com/iliyamo/exam-scheduler/internal/model"
)

func cacheContext(u *model.User, target, path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	if u != nil {
		c.Set(CurrentUserKey, u)
	}
	return c
}

func TestCacheKeySeparatesPrincipals(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	student := &model.User{ID: 2, Role: model.RoleStudent}

	k1, ok1 := cacheKeyFor("exam-scheduler:http", cacheContext(admin, "/v1/exams?status=scheduled", "/v1/exams"))
	k2, ok2 := cacheKeyFor("exam-scheduler:http", cacheContext(student, "/v1/exams?status=scheduled", "/v1/exams"))
	if !ok1 || !ok2 {
		t.Fatalf("expected cacheable requests, got ok1=%v ok2=%v", ok1, ok2)
	}
	if k1 == k2 {
		t.Fatalf("same cache key %q for different users", k1)
	}
}

func TestCacheKeyStableForSamePrincipal(t *testing.T) {
	u := &model.User{ID: 7, Role: model.RoleInstructor}
	k1, _ := cacheKeyFor("p", cacheContext(u, "/v1/rooms?building=ENG", "/v1/rooms"))
	k2, _ := cacheKeyFor("p", cacheContext(u, "/v1/rooms?building=ENG", "/v1/rooms"))
	if k1 != k2 {
		t.Fatalf("key not stable: %q vs %q", k1, k2)
	}
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	u := &model.User{ID: 7, Role: model.RoleInstructor}
	k1, _ := cacheKeyFor("p", cacheContext(u, "/v1/exams?status=scheduled", "/v1/exams"))
	k2, _ := cacheKeyFor("p", cacheContext(u, "/v1/exams?status=cancelled", "/v1/exams"))
	if k1 == k2 {
		t.Fatalf("same key %q for different queries", k1)
	}
}

func TestCacheKeyRequiresResolvedUser(t *testing.T) {
	if k, ok := cacheKeyFor("p", cacheContext(nil, "/v1/exams", "/v1/exams")); ok {
		t.Fatalf("request without a resolved user must not be cacheable, got key %q", k)
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/exams", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("pass-through failed: called=%v code=%d", called, rec.Code)
	}
}
