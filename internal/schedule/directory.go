package schedule

import (
    "context"
    "errors"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// Directory lookup errors.  The repositories return these sentinels so the
// core can distinguish "no such room/course" (a user input problem) from an
// infrastructure failure.
var (
    ErrRoomNotFound   = errors.New("room not found")
    ErrCourseNotFound = errors.New("course not found")
    ErrExamNotFound   = errors.New("exam not found")
)

// RoomDirectory is the read model for rooms.  The scheduling core never
// mutates rooms; administrators edit them through their own endpoints.
type RoomDirectory interface {
    // RoomByID returns the room with the given ID or ErrRoomNotFound.
    RoomByID(ctx context.Context, id uint64) (*model.Room, error)
    // RoomByName resolves a human readable "BLD-name" room reference or
    // returns ErrRoomNotFound.
    RoomByName(ctx context.Context, buildingCode, name string) (*model.Room, error)
    // AvailableRooms lists every room whose is_available flag is set,
    // ordered by building code then room name.
    AvailableRooms(ctx context.Context) ([]model.Room, error)
}

// CourseDirectory is the read model for courses.  External callers address
// courses by code; the directory translates codes to records and fails with
// ErrCourseNotFound when no match exists.
type CourseDirectory interface {
    CourseByID(ctx context.Context, id uint64) (*model.Course, error)
    CourseByCode(ctx context.Context, code string) (*model.Course, error)
}

// ExamStore is the read model over scheduled exams that the conflict
// detector and validator consult.  Implementations should index exams by
// (room, date) so an availability scan does not degrade into a full table
// scan per room.
type ExamStore interface {
    // ExamsByRoomAndDate returns all exams in the room on the date,
    // regardless of status, ordered by start time ascending.
    ExamsByRoomAndDate(ctx context.Context, roomID uint64, date string) ([]model.Exam, error)
    // ExamsForSlot returns all exams of the course with the given type on
    // the given date, regardless of status.
    ExamsForSlot(ctx context.Context, courseID uint64, examType, date string) ([]model.Exam, error)
}
