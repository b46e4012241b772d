package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

func newEnrollmentMock(t *testing.T) (*EnrollmentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewEnrollmentRepo(db), mock
}

const (
	lockExamSQL   = `SELECT max_students FROM exams WHERE id = ? FOR UPDATE`
	countSeatsSQL = `SELECT COUNT(*) FROM exam_enrollments WHERE exam_id = ?`
	insertSeatSQL = `INSERT INTO exam_enrollments (exam_id, student_id) VALUES (?, ?)`
)

func TestEnrollLocksExamRowAndCommits(t *testing.T) {
	repo, mock := newEnrollmentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockExamSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"max_students"}).AddRow(30))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(12))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatSQL)).
		WithArgs(uint64(5), uint64(9)).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectQuery("SELECT id, exam_id, student_id").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "exam_id", "student_id", "enrolled_at"}).
			AddRow(77, 5, 9, "2026-01-10 09:00:00"))
	mock.ExpectCommit()

	got, err := repo.Enroll(context.Background(), 5, 9)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if got.ID != 77 || got.ExamID != 5 || got.StudentID != 9 {
		t.Fatalf("unexpected enrollment %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// The count runs under the exam row lock and a full roster must roll
// back without ever reaching the insert.
func TestEnrollFullExamRollsBackWithoutInsert(t *testing.T) {
	repo, mock := newEnrollmentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockExamSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"max_students"}).AddRow(30))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(30))
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 5, 9)
	if !errors.Is(err, ErrExamFull) {
		t.Fatalf("expected ErrExamFull, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnrollUnknownExam(t *testing.T) {
	repo, mock := newEnrollmentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockExamSQL)).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"max_students"}))
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 404, 9)
	if !errors.Is(err, schedule.ErrExamNotFound) {
		t.Fatalf("expected ErrExamNotFound, got %v", err)
	}
}

func TestEnrollDuplicateSeat(t *testing.T) {
	repo, mock := newEnrollmentMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockExamSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"max_students"}).AddRow(30))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsSQL)).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatSQL)).
		WithArgs(uint64(5), uint64(9)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectRollback()

	_, err := repo.Enroll(context.Background(), 5, 9)
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}
