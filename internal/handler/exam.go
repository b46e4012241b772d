package handler // handler package contains exam scheduling handlers

import (
	"context"  // background contexts for event publishing
	"errors"   // sentinel error matching
	"net/http" // http defines status codes
	"strings"  // strings helps with trimming and splitting
	"time"     // timestamps for events

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/queue"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
	queue_publisher "github.com/iliyamo/exam-scheduler/internal/service"
)

// ExamHandler bundles the scheduling core and repositories behind the exam
// endpoints.  Directories are the cached decorators in production; the
// validator and its detector read through the same instances so every
// request shares one view of the reference data.
type ExamHandler struct {
	Courses   schedule.CourseDirectory
	Rooms     schedule.RoomDirectory
	Exams     *repository.ExamRepo
	Validator *schedule.Validator
}

// NewExamHandler constructs an ExamHandler and panics if any dependency is nil.
func NewExamHandler(courses schedule.CourseDirectory, rooms schedule.RoomDirectory, exams *repository.ExamRepo, v *schedule.Validator) *ExamHandler {
	if courses == nil || rooms == nil || exams == nil || v == nil {
		panic("nil dependency passed to NewExamHandler")
	}
	return &ExamHandler{Courses: courses, Rooms: rooms, Exams: exams, Validator: v}
}

// publishExamEvent fires an ExamScheduleChangedEvent without blocking the
// request: scheduling outcomes never depend on the broker, so the publish
// runs in a goroutine and its error is logged inside the publisher only.
func publishExamEvent(action string, e *model.Exam) {
	ev := queue.ExamScheduleChangedEvent{
		Action:      action,
		ExamID:      e.ID,
		CourseCode:  e.CourseCode,
		ExamType:    e.ExamType,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		RoomName:    e.RoomName,
		MaxStudents: e.MaxStudents,
		Status:      e.Status,
		OccurredAt:  time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishScheduleChanged(ctx, ev)
	}()
}

// resolveRoom accepts either a numeric room ID or a human readable
// reference like "ENG-101" and returns the room.
func (h *ExamHandler) resolveRoom(c echo.Context, roomID uint64, roomRef string) (*model.Room, error) {
	ctx := c.Request().Context()
	if roomID != 0 {
		return h.Rooms.RoomByID(ctx, roomID)
	}
	code, name, ok := splitRoomRef(roomRef)
	if !ok {
		return nil, schedule.ErrRoomNotFound
	}
	return h.Rooms.RoomByName(ctx, code, name)
}

// resolveCourse accepts either a numeric course ID or a course code.
func (h *ExamHandler) resolveCourse(c echo.Context, courseID uint64, courseCode string) (*model.Course, error) {
	ctx := c.Request().Context()
	if courseID != 0 {
		return h.Courses.CourseByID(ctx, courseID)
	}
	code := strings.TrimSpace(courseCode)
	if code == "" {
		return nil, schedule.ErrCourseNotFound
	}
	return h.Courses.CourseByCode(ctx, code)
}

// examWriteError maps the repository write error taxonomy onto HTTP
// responses.  Callers retry once on lock contention before coming here.
func examWriteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrScheduleConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "room is not available at this time",
			"code":  schedule.CodeRoomConflict,
		})
	case errors.Is(err, repository.ErrDuplicateSlot):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "course already has an exam of this type on this date",
			"code":  schedule.CodeDuplicateExamSlot,
		})
	case repository.IsLockContention(err):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "scheduling unavailable, try again"})
	case errors.Is(err, schedule.ErrExamNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
	case errors.Is(err, schedule.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save exam"})
	}
}

// CreateExam handles POST /v1/exams.  Instructors may only schedule exams
// for their own courses; admins for any course.  All rule violations are
// accumulated and returned together so the client can fix them in one pass.
func (h *ExamHandler) CreateExam(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u := currentUser(c)

	var body struct {
		CourseID    uint64 `json:"course_id"`
		CourseCode  string `json:"course_code"`
		ExamType    string `json:"exam_type"`
		Date        string `json:"date"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		RoomID      uint64 `json:"room_id"`
		Room        string `json:"room"` // e.g. "ENG-101", alternative to room_id
		MaxStudents uint32 `json:"max_students"`
		Notes       string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	examType := strings.ToLower(strings.TrimSpace(body.ExamType))
	if !model.ValidExamType(examType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exam_type"})
	}
	date, err := schedule.NormalizeDate(strings.TrimSpace(body.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	start, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.StartTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, expected HH:MM"})
	}
	end, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.EndTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, expected HH:MM"})
	}
	if body.MaxStudents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_students is required"})
	}

	course, err := h.resolveCourse(c, body.CourseID, body.CourseCode)
	if err != nil {
		if errors.Is(err, schedule.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load course"})
	}
	// Instructors schedule only their own courses.
	if u != nil && u.Role == model.RoleInstructor && course.InstructorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your course"})
	}

	room, err := h.resolveRoom(c, body.RoomID, body.Room)
	if err != nil {
		if errors.Is(err, schedule.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	if !room.IsAvailable {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not available for scheduling"})
	}

	violations, err := h.Validator.Validate(c.Request().Context(), schedule.Candidate{
		CourseID:    course.ID,
		ExamType:    examType,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		RoomID:      room.ID,
		MaxStudents: body.MaxStudents,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}
	if len(violations) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": violations})
	}

	exam := &model.Exam{
		CourseID:        course.ID,
		ExamType:        examType,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		RoomID:          room.ID,
		DurationMinutes: schedule.DurationMinutes(start, end),
		MaxStudents:     body.MaxStudents,
		Status:          model.ExamStatusScheduled,
		Notes:           strings.TrimSpace(body.Notes),
		CreatedByID:     uid,
	}
	ctx := c.Request().Context()
	err = h.Exams.Create(ctx, exam)
	if repository.IsLockContention(err) {
		err = h.Exams.Create(ctx, exam) // one retry; contention is normally transient
	}
	if err != nil {
		return examWriteError(c, err)
	}

	publishExamEvent(queue.ActionCreated, exam)
	return c.JSON(http.StatusCreated, exam)
}

// UpdateExam handles PUT/PATCH /v1/exams/:id.  Any schedule field may
// change; the exam itself is excluded from its own conflict check so a
// partial edit never collides with the exam's current slot.
func (h *ExamHandler) UpdateExam(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u := currentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	cur, err := h.Exams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrExamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exam"})
	}
	if u != nil && u.Role == model.RoleInstructor && cur.InstructorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your course"})
	}

	var body struct {
		ExamType    *string `json:"exam_type"`
		Date        *string `json:"date"`
		StartTime   *string `json:"start_time"`
		EndTime     *string `json:"end_time"`
		RoomID      *uint64 `json:"room_id"`
		Room        *string `json:"room"`
		MaxStudents *uint32 `json:"max_students"`
		Status      *string `json:"status"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	next := *cur
	if body.ExamType != nil {
		t := strings.ToLower(strings.TrimSpace(*body.ExamType))
		if !model.ValidExamType(t) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exam_type"})
		}
		next.ExamType = t
	}
	if body.Date != nil {
		d, err := schedule.NormalizeDate(strings.TrimSpace(*body.Date))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
		}
		next.Date = d
	}
	if body.StartTime != nil {
		t, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(*body.StartTime))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, expected HH:MM"})
		}
		next.StartTime = t
	}
	if body.EndTime != nil {
		t, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(*body.EndTime))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, expected HH:MM"})
		}
		next.EndTime = t
	}
	if body.RoomID != nil || body.Room != nil {
		var roomID uint64
		var roomRef string
		if body.RoomID != nil {
			roomID = *body.RoomID
		}
		if body.Room != nil {
			roomRef = *body.Room
		}
		room, err := h.resolveRoom(c, roomID, roomRef)
		if err != nil {
			if errors.Is(err, schedule.ErrRoomNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
		}
		if !room.IsAvailable {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not available for scheduling"})
		}
		next.RoomID = room.ID
		next.RoomName = room.FullName()
	}
	if body.MaxStudents != nil {
		if *body.MaxStudents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_students must be positive"})
		}
		next.MaxStudents = *body.MaxStudents
	}
	if body.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*body.Status))
		if !model.ValidExamStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		next.Status = s
	}
	if body.Notes != nil {
		next.Notes = strings.TrimSpace(*body.Notes)
	}
	next.DurationMinutes = schedule.DurationMinutes(next.StartTime, next.EndTime)

	// A cancelled exam vacates its slot, so only blocking target statuses
	// go through slot validation.
	if schedule.Blocking().Contains(next.Status) {
		violations, err := h.Validator.Validate(c.Request().Context(), schedule.Candidate{
			ExamID:      &next.ID,
			CourseID:    next.CourseID,
			ExamType:    next.ExamType,
			Date:        next.Date,
			StartTime:   next.StartTime,
			EndTime:     next.EndTime,
			RoomID:      next.RoomID,
			MaxStudents: next.MaxStudents,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
		}
		if len(violations) > 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": violations})
		}
	} else if next.EndTime <= next.StartTime {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": []schedule.ValidationError{{
			Code:    schedule.CodeInvalidInterval,
			Message: "end time must be after start time",
		}}})
	}

	ctx := c.Request().Context()
	updated := next
	err = h.Exams.UpdateSchedule(ctx, &updated)
	if repository.IsLockContention(err) {
		updated = next
		err = h.Exams.UpdateSchedule(ctx, &updated)
	}
	if err != nil {
		return examWriteError(c, err)
	}

	action := queue.ActionUpdated
	if updated.Status == model.ExamStatusCancelled && cur.Status != model.ExamStatusCancelled {
		action = queue.ActionCancelled
	}
	publishExamEvent(action, &updated)
	return c.JSON(http.StatusOK, updated)
}

// DeleteExam handles DELETE /v1/exams/:id.  Admins may delete any exam;
// instructors only exams they created.  Enrollments cascade.
func (h *ExamHandler) DeleteExam(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u := currentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	cur, err := h.Exams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrExamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exam"})
	}
	if u != nil && u.Role == model.RoleInstructor && cur.CreatedByID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the creator may delete this exam"})
	}

	if err := h.Exams.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, schedule.ErrExamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	publishExamEvent(queue.ActionDeleted, cur)
	return c.NoContent(http.StatusNoContent)
}

// ListExams handles GET /v1/exams: the role-scoped listing with optional
// department/date range/status filters.
func (h *ExamHandler) ListExams(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	scope, err := schedule.ScopeFor(u)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var f schedule.Filters
	if v := c.QueryParam("department_id"); v != "" {
		var id uint64
		if id, err = parseQueryID(v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
		}
		f.DepartmentID = id
	}
	if v := c.QueryParam("date_from"); v != "" {
		if f.DateFrom, err = schedule.NormalizeDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if f.DateTo, err = schedule.NormalizeDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
		}
	}
	if v := c.QueryParam("status"); v != "" {
		s := strings.ToLower(v)
		if !model.ValidExamStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = s
	}

	exams, err := h.Exams.ListVisible(c.Request().Context(), scope, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exams"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": exams, "total_count": len(exams)})
}

// GetExam handles GET /v1/exams/:id with the same visibility rule as the
// listing; exams outside the caller's scope read as not found.
func (h *ExamHandler) GetExam(c echo.Context) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	scope, err := schedule.ScopeFor(u)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	exam, err := h.Exams.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrExamNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exam"})
	}
	if !scope.Allows(exam.DepartmentID, exam.InstructorID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "exam not found"})
	}
	return c.JSON(http.StatusOK, exam)
}

// MyExams handles GET /v1/exams/mine: instructors get the exams of their
// own courses, students the exams they are enrolled in, admins everything.
func (h *ExamHandler) MyExams(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u := currentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var exams []model.Exam
	switch u.Role {
	case model.RoleInstructor:
		exams, err = h.Exams.ListByInstructor(c.Request().Context(), uid)
	case model.RoleStudent:
		exams, err = h.Exams.ListByStudent(c.Request().Context(), uid)
	case model.RoleAdmin:
		exams, err = h.Exams.ListVisible(c.Request().Context(), schedule.Scope{All: true}, schedule.Filters{})
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load exams"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": exams, "total_count": len(exams)})
}

// CheckConflicts handles POST /v1/exams/check-conflicts: a dry-run room
// conflict probe that shares the detector with the write path.
func (h *ExamHandler) CheckConflicts(c echo.Context) error {
	var body struct {
		RoomID        uint64  `json:"room_id"`
		Room          string  `json:"room"`
		Date          string  `json:"date"`
		StartTime     string  `json:"start_time"`
		EndTime       string  `json:"end_time"`
		ExcludeExamID *uint64 `json:"exclude_exam_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := schedule.NormalizeDate(strings.TrimSpace(body.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	start, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.StartTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, expected HH:MM"})
	}
	end, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.EndTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, expected HH:MM"})
	}
	if end <= start {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	room, err := h.resolveRoom(c, body.RoomID, body.Room)
	if err != nil {
		if errors.Is(err, schedule.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}

	conflicts, err := h.Validator.Detector.FindConflicts(
		c.Request().Context(), room.ID, date, start, end, body.ExcludeExamID, schedule.Blocking())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"has_conflicts": len(conflicts) > 0,
		"conflicts":     conflicts,
	})
}
