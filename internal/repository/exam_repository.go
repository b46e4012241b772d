package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/exam-scheduler/internal/model"
    "github.com/iliyamo/exam-scheduler/internal/schedule"
)

// ExamRepo manages persistence for exams.  It implements
// schedule.ExamStore for the conflict detector and additionally owns the
// write path: creation and rescheduling run their conflict re-check and
// the insert/update as one transaction, serialized per room by a row lock,
// so two concurrent requests for the same room and slot cannot both
// observe "no conflict" and both succeed.
type ExamRepo struct {
    db *sql.DB
}

// NewExamRepo constructs an ExamRepo with the given DB handle.
func NewExamRepo(db *sql.DB) *ExamRepo {
    return &ExamRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need transaction
// control spanning repositories.
func (r *ExamRepo) DB() *sql.DB {
    return r.db
}

// Dates and times are formatted in SQL so the driver hands back the
// canonical schedule package strings regardless of its parseTime setting.
const examColumns = `e.id, e.course_id, c.code, c.department_id, c.instructor_id, e.exam_type,
       DATE_FORMAT(e.date, '%Y-%m-%d'),
       TIME_FORMAT(e.start_time, '%H:%i:%s'),
       TIME_FORMAT(e.end_time, '%H:%i:%s'),
       e.room_id, CONCAT(b.code, '-', rm.name),
       e.duration_minutes, e.max_students, e.status, e.notes, e.created_by,
       DATE_FORMAT(e.created_at, '%Y-%m-%d %H:%i:%s'),
       DATE_FORMAT(e.updated_at, '%Y-%m-%d %H:%i:%s')`

const examFrom = ` FROM exams e
       JOIN courses c ON c.id = e.course_id
       JOIN rooms rm ON rm.id = e.room_id
       JOIN buildings b ON b.id = rm.building_id`

func scanExam(row interface{ Scan(...any) error }) (*model.Exam, error) {
    var m model.Exam
    err := row.Scan(
        &m.ID, &m.CourseID, &m.CourseCode, &m.DepartmentID, &m.InstructorID, &m.ExamType,
        &m.Date, &m.StartTime, &m.EndTime,
        &m.RoomID, &m.RoomName,
        &m.DurationMinutes, &m.MaxStudents, &m.Status, &m.Notes, &m.CreatedByID,
        &m.CreatedAt, &m.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &m, nil
}

func (r *ExamRepo) queryExams(ctx context.Context, q string, args ...any) ([]model.Exam, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Exam, 0)
    for rows.Next() {
        e, err := scanExam(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *e)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// GetByID retrieves an exam by its ID.  It returns
// schedule.ErrExamNotFound if there is no matching row.
func (r *ExamRepo) GetByID(ctx context.Context, id uint64) (*model.Exam, error) {
    const q = `SELECT ` + examColumns + examFrom + ` WHERE e.id = ?`
    e, err := scanExam(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, schedule.ErrExamNotFound
        }
        return nil, err
    }
    return e, nil
}

// ExamsByRoomAndDate returns all exams in the room on the date regardless
// of status, ordered by start time ascending.  The (room_id, date) index
// keeps availability scans from walking the whole table.
func (r *ExamRepo) ExamsByRoomAndDate(ctx context.Context, roomID uint64, date string) ([]model.Exam, error) {
    const q = `SELECT ` + examColumns + examFrom + `
               WHERE e.room_id = ? AND e.date = ?
               ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, roomID, date)
}

// ExamsForSlot returns all exams of the course with the given type on the
// given date, regardless of status.
func (r *ExamRepo) ExamsForSlot(ctx context.Context, courseID uint64, examType, date string) ([]model.Exam, error) {
    const q = `SELECT ` + examColumns + examFrom + `
               WHERE e.course_id = ? AND e.exam_type = ? AND e.date = ?
               ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, courseID, examType, date)
}

// ListVisible returns the exams inside the given visibility scope that
// match the filters, ordered by (date, start_time) ascending.  The scope
// produced by schedule.ScopeFor is translated to SQL here; Scope.Allows
// performs the identical check for single-exam reads.
func (r *ExamRepo) ListVisible(ctx context.Context, scope schedule.Scope, f schedule.Filters) ([]model.Exam, error) {
    q := `SELECT ` + examColumns + examFrom + ` WHERE 1=1`
    args := make([]any, 0, 6)
    if !scope.All {
        if scope.InstructorID != 0 {
            q += ` AND (c.instructor_id = ? OR c.department_id = ?)`
            args = append(args, scope.InstructorID, scope.DepartmentID)
        } else {
            q += ` AND c.department_id = ?`
            args = append(args, scope.DepartmentID)
        }
    }
    if f.DepartmentID != 0 {
        q += ` AND c.department_id = ?`
        args = append(args, f.DepartmentID)
    }
    if f.DateFrom != "" {
        q += ` AND e.date >= ?`
        args = append(args, f.DateFrom)
    }
    if f.DateTo != "" {
        q += ` AND e.date <= ?`
        args = append(args, f.DateTo)
    }
    if f.Status != "" {
        q += ` AND e.status = ?`
        args = append(args, f.Status)
    }
    q += ` ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, args...)
}

// ListByInstructor returns every exam of the courses taught by the given
// instructor, ordered by (date, start_time).
func (r *ExamRepo) ListByInstructor(ctx context.Context, instructorID uint64) ([]model.Exam, error) {
    const q = `SELECT ` + examColumns + examFrom + `
               WHERE c.instructor_id = ?
               ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, instructorID)
}

// ListByStudent returns the exams the given student is enrolled in,
// ordered by (date, start_time).
func (r *ExamRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.Exam, error) {
    const q = `SELECT ` + examColumns + examFrom + `
               JOIN exam_enrollments en ON en.exam_id = e.id
               WHERE en.student_id = ?
               ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, studentID)
}

// ListByRoom returns every exam in the room, optionally bounded by an
// inclusive date range, ordered by (date, start_time).  Used by the room
// schedule endpoint.
func (r *ExamRepo) ListByRoom(ctx context.Context, roomID uint64, dateFrom, dateTo string) ([]model.Exam, error) {
    q := `SELECT ` + examColumns + examFrom + ` WHERE e.room_id = ?`
    args := []any{roomID}
    if dateFrom != "" {
        q += ` AND e.date >= ?`
        args = append(args, dateFrom)
    }
    if dateTo != "" {
        q += ` AND e.date <= ?`
        args = append(args, dateTo)
    }
    q += ` ORDER BY e.date, e.start_time`
    return r.queryExams(ctx, q, args...)
}

// guardSlotTx re-checks the room interval and the (course, exam_type, date)
// uniqueness inside the given transaction.  The room row is locked first,
// which serializes concurrent writers targeting the same room; the check
// applies the same schedule.Overlaps predicate and blocking status set as
// the validator, so the two can never diverge.  excludeID skips the exam
// being rescheduled.
func (r *ExamRepo) guardSlotTx(ctx context.Context, tx *sql.Tx, e *model.Exam, excludeID uint64) error {
    var locked uint64
    if err := tx.QueryRowContext(ctx,
        `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, e.RoomID,
    ).Scan(&locked); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return schedule.ErrRoomNotFound
        }
        return err
    }

    rows, err := tx.QueryContext(ctx,
        `SELECT id, TIME_FORMAT(start_time, '%H:%i:%s'), TIME_FORMAT(end_time, '%H:%i:%s'), status
         FROM exams WHERE room_id = ? AND date = ?`,
        e.RoomID, e.Date,
    )
    if err != nil {
        return err
    }
    blocking := schedule.Blocking()
    for rows.Next() {
        var id uint64
        var start, end, status string
        if err := rows.Scan(&id, &start, &end, &status); err != nil {
            rows.Close()
            return err
        }
        if id == excludeID || !blocking.Contains(status) {
            continue
        }
        if schedule.Overlaps(start, end, e.StartTime, e.EndTime) {
            rows.Close()
            return ErrScheduleConflict
        }
    }
    if err := rows.Close(); err != nil {
        return err
    }

    var dup uint64
    err = tx.QueryRowContext(ctx,
        `SELECT id FROM exams
         WHERE course_id = ? AND exam_type = ? AND date = ? AND status <> ? AND id <> ?
         LIMIT 1`,
        e.CourseID, e.ExamType, e.Date, model.ExamStatusCancelled, excludeID,
    ).Scan(&dup)
    if err == nil {
        return ErrDuplicateSlot
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return err
    }
    return nil
}

// Create inserts a new exam after re-checking its slot inside a
// transaction.  On success the generated ID and DB default fields are
// populated on the given exam.  It returns ErrScheduleConflict or
// ErrDuplicateSlot when a concurrent booking won the slot between
// validation and the insert.
func (r *ExamRepo) Create(ctx context.Context, e *model.Exam) (err error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() {
        if err != nil {
            _ = tx.Rollback()
        } else {
            err = tx.Commit()
        }
    }()

    if err = r.guardSlotTx(ctx, tx, e, 0); err != nil {
        return err
    }

    const q = `INSERT INTO exams
               (course_id, exam_type, date, start_time, end_time, room_id, duration_minutes, max_students, status, notes, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        e.CourseID, e.ExamType, e.Date, e.StartTime, e.EndTime, e.RoomID,
        e.DurationMinutes, e.MaxStudents, e.Status, e.Notes, e.CreatedByID,
    )
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrDuplicateSlot
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)

    const sel = `SELECT ` + examColumns + examFrom + ` WHERE e.id = ?`
    fresh, err := scanExam(tx.QueryRowContext(ctx, sel, e.ID))
    if err != nil {
        return err
    }
    *e = *fresh
    return nil
}

// UpdateSchedule rewrites an exam's mutable attributes after re-checking
// the new slot inside a transaction, excluding the exam itself from the
// overlap check so it never conflicts with its own current interval.
func (r *ExamRepo) UpdateSchedule(ctx context.Context, e *model.Exam) (err error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() {
        if err != nil {
            _ = tx.Rollback()
        } else {
            err = tx.Commit()
        }
    }()

    // Cancelled exams vacate their slot, so only a blocking target status
    // needs the slot guard.
    if schedule.Blocking().Contains(e.Status) {
        if err = r.guardSlotTx(ctx, tx, e, e.ID); err != nil {
            return err
        }
    }

    const q = `UPDATE exams
               SET exam_type = ?, date = ?, start_time = ?, end_time = ?, room_id = ?,
                   duration_minutes = ?, max_students = ?, status = ?, notes = ?
               WHERE id = ?`
    res, err := tx.ExecContext(ctx, q,
        e.ExamType, e.Date, e.StartTime, e.EndTime, e.RoomID,
        e.DurationMinutes, e.MaxStudents, e.Status, e.Notes, e.ID,
    )
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrDuplicateSlot
        }
        return err
    }
    if _, err = res.RowsAffected(); err != nil {
        return err
    }

    const sel = `SELECT ` + examColumns + examFrom + ` WHERE e.id = ?`
    fresh, scanErr := scanExam(tx.QueryRowContext(ctx, sel, e.ID))
    if scanErr != nil {
        if errors.Is(scanErr, sql.ErrNoRows) {
            err = schedule.ErrExamNotFound
            return err
        }
        err = scanErr
        return err
    }
    *e = *fresh
    return nil
}

// Delete removes an exam and cascades to its enrollments inside one
// transaction.  It returns schedule.ErrExamNotFound when no row exists.
func (r *ExamRepo) Delete(ctx context.Context, id uint64) (err error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() {
        if err != nil {
            _ = tx.Rollback()
        } else {
            err = tx.Commit()
        }
    }()

    if _, err = tx.ExecContext(ctx, `DELETE FROM exam_enrollments WHERE exam_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        err = schedule.ErrExamNotFound
        return err
    }
    return nil
}
