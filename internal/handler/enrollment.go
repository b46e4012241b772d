package handler // handler package contains exam enrollment handlers

import (
	"errors"   // sentinel error matching
	"net/http" // http defines status codes

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

// EnrollmentHandler manages the student/exam join: students enrol in and
// withdraw from exams, instructors and admins read the roster.
type EnrollmentHandler struct {
	Exams       *repository.ExamRepo
	Enrollments *repository.EnrollmentRepo
}

// NewEnrollmentHandler constructs an EnrollmentHandler and panics if any
// dependency is nil.
func NewEnrollmentHandler(exams *repository.ExamRepo, enrollments *repository.EnrollmentRepo) *EnrollmentHandler {
	if exams == nil || enrollments == nil {
		panic("nil dependency passed to NewEnrollmentHandler")
	}
	return &EnrollmentHandler{Exams: exams, Enrollments: enrollments}
}

// loadVisibleExam resolves the exam in the :id path parameter and applies
// the caller's visibility scope; exams outside it read as not found.  The
// returned exam is nil when a response was already written.
func (h *EnrollmentHandler) loadVisibleExam(c echo.Context) (*model.Exam, bool) {
	u := currentUser(c)
	if u == nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	scope, err := schedule.ScopeFor(u)
	if err != nil {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return nil, false
	}
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	exam, err := h.Exams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrExamNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exam"})
		}
		return nil, false
	}
	if !scope.Allows(exam.DepartmentID, exam.InstructorID) {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		return nil, false
	}
	return exam, true
}

// Enroll handles POST /v1/exams/:id/enrollments (student only).  A seat
// is granted only while the exam is active; the seat limit itself is
// enforced inside the enrollment transaction, so two racing students
// cannot both take the last place.
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	exam, ok := h.loadVisibleExam(c)
	if !ok {
		return nil
	}
	if exam.Status == model.ExamStatusCancelled || exam.Status == model.ExamStatusCompleted {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exam is not open for enrollment"})
	}

	ctx := c.Request().Context()
	enrollment, err := h.Enrollments.Enroll(ctx, exam.ID, uid)
	if repository.IsLockContention(err) {
		enrollment, err = h.Enrollments.Enroll(ctx, exam.ID, uid)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrExamFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": "exam is full"})
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already enrolled"})
		case errors.Is(err, schedule.ErrExamNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		case repository.IsLockContention(err):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "enrollment unavailable, try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "enrollment failed"})
	}
	return c.JSON(http.StatusCreated, enrollment)
}

// Unenroll handles DELETE /v1/exams/:id/enrollments (student only).
func (h *EnrollmentHandler) Unenroll(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	exam, ok := h.loadVisibleExam(c)
	if !ok {
		return nil
	}

	removed, err := h.Enrollments.Unenroll(c.Request().Context(), exam.ID, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unenroll failed"})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not enrolled"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEnrollments handles GET /v1/exams/:id/enrollments (instructor/admin).
// Instructors see only the rosters of their own courses' exams.
func (h *EnrollmentHandler) ListEnrollments(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u := currentUser(c)
	exam, ok := h.loadVisibleExam(c)
	if !ok {
		return nil
	}
	if u != nil && u.Role == model.RoleInstructor && exam.InstructorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your course"})
	}

	items, err := h.Enrollments.ListByExam(c.Request().Context(), exam.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load enrollments"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":        items,
		"total_count":  len(items),
		"max_students": exam.MaxStudents,
	})
}
