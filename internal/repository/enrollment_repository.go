package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

// EnrollmentRepo manages the exam_enrollments join table.  Enrollment is
// a weak link: rows disappear when either the exam is deleted or the
// student unenrols.  Uniqueness on (exam_id, student_id) is enforced by
// the database and surfaced as ErrAlreadyEnrolled; the seat limit is
// enforced transactionally by Enroll itself.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo constructs an EnrollmentRepo with the given DB handle.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// Enroll grants the student a seat in the exam.  The seat-limit check
// and the insert run in one transaction with the exam row locked, so
// concurrent enrollments serialize and cannot push the roster past
// max_students.  A full exam yields ErrExamFull, a repeat enrollment
// ErrAlreadyEnrolled.
func (r *EnrollmentRepo) Enroll(ctx context.Context, examID, studentID uint64) (m *model.ExamEnrollment, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var limit uint32
	err = tx.QueryRowContext(ctx,
		`SELECT max_students FROM exams WHERE id = ? FOR UPDATE`, examID).Scan(&limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = schedule.ErrExamNotFound
		}
		return nil, err
	}
	var taken uint32
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exam_enrollments WHERE exam_id = ?`, examID).Scan(&taken); err != nil {
		return nil, err
	}
	if taken >= limit {
		err = ErrExamFull
		return nil, err
	}

	res, execErr := tx.ExecContext(ctx,
		`INSERT INTO exam_enrollments (exam_id, student_id) VALUES (?, ?)`, examID, studentID)
	if execErr != nil {
		if isDuplicateEntry(execErr) {
			err = ErrAlreadyEnrolled
		} else {
			err = execErr
		}
		return nil, err
	}
	id, idErr := res.LastInsertId()
	if idErr != nil {
		err = idErr
		return nil, err
	}

	row := &model.ExamEnrollment{}
	const sel = `SELECT id, exam_id, student_id, DATE_FORMAT(enrolled_at, '%Y-%m-%d %H:%i:%s')
	             FROM exam_enrollments WHERE id = ?`
	if err = tx.QueryRowContext(ctx, sel, id).Scan(&row.ID, &row.ExamID, &row.StudentID, &row.EnrolledAt); err != nil {
		return nil, err
	}
	return row, nil
}

// Unenroll removes the student's enrollment in the exam.  It reports
// whether a row was actually removed.
func (r *EnrollmentRepo) Unenroll(ctx context.Context, examID, studentID uint64) (bool, error) {
	const q = `DELETE FROM exam_enrollments WHERE exam_id = ? AND student_id = ?`
	res, err := r.db.ExecContext(ctx, q, examID, studentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByExam returns all enrollments of an exam ordered by enrollment time.
func (r *EnrollmentRepo) ListByExam(ctx context.Context, examID uint64) ([]model.ExamEnrollment, error) {
	const q = `SELECT id, exam_id, student_id, DATE_FORMAT(enrolled_at, '%Y-%m-%d %H:%i:%s')
               FROM exam_enrollments WHERE exam_id = ? ORDER BY enrolled_at`
	rows, err := r.db.QueryContext(ctx, q, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.ExamEnrollment, 0)
	for rows.Next() {
		var m model.ExamEnrollment
		if err := rows.Scan(&m.ID, &m.ExamID, &m.StudentID, &m.EnrolledAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
