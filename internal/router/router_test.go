package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-scheduler/internal/handler"
	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/repository"
)

const testSecret = "router-test-secret"

// staticUsers satisfies middleware.UserSource for route-level tests.
type staticUsers map[uint64]*model.User

func (s staticUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(u.ID, 10),
		"role": u.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// newExamServer registers the exam routes over empty handlers: the tests
// below only exercise the middleware chain and request validation, which
// run before any handler dependency is touched.
func newExamServer(users staticUsers) *echo.Echo {
	e := echo.New()
	RegisterExams(e, &handler.ExamHandler{}, &handler.EnrollmentHandler{}, users, testSecret, nil)
	return e
}

func postJSON(e *echo.Echo, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCheckConflictsOpenToStudents(t *testing.T) {
	student := &model.User{ID: 2, Role: model.RoleStudent, IsActive: true}
	e := newExamServer(staticUsers{2: student})

	rec := postJSON(e, "/v1/exams/check-conflicts", tokenFor(t, student), `{}`)
	if rec.Code == http.StatusForbidden {
		t.Fatal("conflict probing must be open to every authenticated role, got 403")
	}
	// The empty body fails date validation, which proves the handler ran.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 from slot validation, got %d", rec.Code)
	}
}

func TestCreateExamClosedToStudents(t *testing.T) {
	student := &model.User{ID: 2, Role: model.RoleStudent, IsActive: true}
	e := newExamServer(staticUsers{2: student})

	rec := postJSON(e, "/v1/exams", tokenFor(t, student), `{}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student exam creation, got %d", rec.Code)
	}
}

func TestExamRoutesRequireToken(t *testing.T) {
	e := newExamServer(staticUsers{})

	rec := postJSON(e, "/v1/exams/check-conflicts", "", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestDeactivatedAccountRejected(t *testing.T) {
	gone := &model.User{ID: 3, Role: model.RoleInstructor, IsActive: false}
	e := newExamServer(staticUsers{3: gone})

	rec := postJSON(e, "/v1/exams/check-conflicts", tokenFor(t, gone), `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated account, got %d", rec.Code)
	}
}
