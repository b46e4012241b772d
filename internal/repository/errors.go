// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  Entity
// lookup failures use the schedule package sentinels (ErrRoomNotFound,
// ErrCourseNotFound, ErrExamNotFound) so the scheduling core and the
// storage layer share one taxonomy.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrScheduleConflict is returned when the transactional re-check before
// an exam insert or reschedule finds a blocking exam that appeared after
// validation.  Handlers should translate this into an HTTP 409 response.
var ErrScheduleConflict = errors.New("schedule conflict")

// ErrDuplicateSlot is returned when the (course, exam_type, date)
// uniqueness re-check trips inside the write transaction.
var ErrDuplicateSlot = errors.New("duplicate exam slot")

// ErrAlreadyEnrolled is returned when a student enrols twice in the
// same exam.
var ErrAlreadyEnrolled = errors.New("already enrolled")

// ErrExamFull is returned when the enrollment transaction finds the
// exam at its seat limit under the row lock.
var ErrExamFull = errors.New("exam full")

// ErrUserNotFound is returned when a user lookup by id or email finds
// no row.
var ErrUserNotFound = errors.New("user not found")

// MySQL server error numbers consulted when classifying failures.
const (
    mysqlDuplicateEntry  = 1062
    mysqlLockWaitTimeout = 1205
    mysqlDeadlock        = 1213
)

// IsLockContention reports whether err is a MySQL lock wait timeout or
// deadlock.  Callers retry the operation once and then surface the
// failure as "scheduling unavailable" rather than a validation error.
func IsLockContention(err error) bool {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number == mysqlLockWaitTimeout || me.Number == mysqlDeadlock
    }
    return false
}

// isDuplicateEntry reports whether err is a MySQL unique key violation.
func isDuplicateEntry(err error) bool {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number == mysqlDuplicateEntry
    }
    return false
}
