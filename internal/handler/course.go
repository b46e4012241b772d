package handler // handler package contains course directory handlers

import (
	"errors"   // sentinel error matching
	"net/http" // http defines status codes
	"strings"  // strings helps with trimming

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/iliyamo/exam-scheduler/internal/directory"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

// CourseHandler exposes the read-only course directory.  Courses are
// maintained by the registrar system; this service only schedules exams
// against them.
type CourseHandler struct {
	Courses   *repository.CourseRepo
	Directory *directory.CachedCourses
}

// NewCourseHandler constructs a CourseHandler and panics if any dependency is nil.
func NewCourseHandler(courses *repository.CourseRepo, dir *directory.CachedCourses) *CourseHandler {
	if courses == nil || dir == nil {
		panic("nil dependency passed to NewCourseHandler")
	}
	return &CourseHandler{Courses: courses, Directory: dir}
}

// ListCourses handles GET /v1/courses with department_id, instructor_id
// and semester filters.
func (h *CourseHandler) ListCourses(c echo.Context) error {
	var f repository.CourseFilters
	if v := c.QueryParam("department_id"); v != "" {
		id, err := parseQueryID(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
		}
		f.DepartmentID = id
	}
	if v := c.QueryParam("instructor_id"); v != "" {
		id, err := parseQueryID(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid instructor_id"})
		}
		f.InstructorID = id
	}
	f.Semester = strings.TrimSpace(c.QueryParam("semester"))

	courses, err := h.Courses.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load courses"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": courses, "total_count": len(courses)})
}

// GetCourse handles GET /v1/courses/:code.  The lookup goes through the
// directory cache since course codes are the hot path for exam creation.
func (h *CourseHandler) GetCourse(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "course code required"})
	}
	course, err := h.Directory.CourseByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, schedule.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load course"})
	}
	return c.JSON(http.StatusOK, course)
}
