package schedule

import (
    "errors"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// ErrUnknownRole is returned by ScopeFor when the user's role is outside the
// closed admin/instructor/student set.
var ErrUnknownRole = errors.New("unknown role")

// Scope describes the subset of exams a user is permitted to read.  It is
// produced by ScopeFor, the single role dispatch point: repositories
// translate a Scope into SQL for list queries, and Allows performs the same
// check for a single exam.
//
// Fields:
//  All          – admin: no restriction.
//  DepartmentID – exams whose course belongs to this department match.
//  InstructorID – exams whose course is taught by this user also match
//                 (instructors only; zero otherwise).
type Scope struct {
    All          bool
    DepartmentID uint64
    InstructorID uint64
}

// ScopeFor derives the visibility scope of a user from their role:
// students see exams of their own department, instructors additionally see
// exams of courses they teach, and admins see everything.  Users without a
// department (outside admin) get an empty scope rather than an error, which
// matches no exams.
func ScopeFor(u *model.User) (Scope, error) {
    var dept uint64
    if u.DepartmentID != nil {
        dept = *u.DepartmentID
    }
    switch u.Role {
    case model.RoleAdmin:
        return Scope{All: true}, nil
    case model.RoleInstructor:
        return Scope{DepartmentID: dept, InstructorID: u.ID}, nil
    case model.RoleStudent:
        return Scope{DepartmentID: dept}, nil
    default:
        return Scope{}, ErrUnknownRole
    }
}

// Allows reports whether an exam belonging to a course with the given
// department and instructor is inside the scope.
func (s Scope) Allows(courseDeptID, courseInstructorID uint64) bool {
    if s.All {
        return true
    }
    if s.InstructorID != 0 && s.InstructorID == courseInstructorID {
        return true
    }
    return s.DepartmentID != 0 && s.DepartmentID == courseDeptID
}

// Filters narrows a visible-exam listing.  All set fields are combined with
// AND, and always with the role scope itself.
//
// Fields:
//  DepartmentID – only exams of courses in this department.
//  DateFrom     – inclusive lower date bound ("2006-01-02").
//  DateTo       – inclusive upper date bound.
//  Status       – only exams in this lifecycle status.
type Filters struct {
    DepartmentID uint64
    DateFrom     string
    DateTo       string
    Status       string
}

// Match reports whether the exam satisfies every set filter.  Repositories
// normally push filters into SQL; Match exists so in-memory callers and
// tests share the same semantics.
func (f Filters) Match(e *model.Exam) bool {
    if f.DepartmentID != 0 && e.DepartmentID != f.DepartmentID {
        return false
    }
    if f.DateFrom != "" && e.Date < f.DateFrom {
        return false
    }
    if f.DateTo != "" && e.Date > f.DateTo {
        return false
    }
    if f.Status != "" && e.Status != f.Status {
        return false
    }
    return true
}
