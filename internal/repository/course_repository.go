package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/exam-scheduler/internal/model"
    "github.com/iliyamo/exam-scheduler/internal/schedule"
)

// CourseRepo manages persistence for courses and departments.  It
// implements schedule.CourseDirectory; the scheduling core reads courses
// but never mutates them.
type CourseRepo struct {
    db *sql.DB
}

// NewCourseRepo constructs a CourseRepo with the given DB handle.
func NewCourseRepo(db *sql.DB) *CourseRepo {
    return &CourseRepo{db: db}
}

const courseColumns = `id, name, code, department_id, instructor_id, credits, semester`

func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
    var m model.Course
    err := row.Scan(&m.ID, &m.Name, &m.Code, &m.DepartmentID, &m.InstructorID, &m.Credits, &m.Semester)
    if err != nil {
        return nil, err
    }
    return &m, nil
}

// CourseByID retrieves a course by its ID.  It returns
// schedule.ErrCourseNotFound if there is no matching row.
func (r *CourseRepo) CourseByID(ctx context.Context, id uint64) (*model.Course, error) {
    const q = `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
    course, err := scanCourse(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, schedule.ErrCourseNotFound
        }
        return nil, err
    }
    return course, nil
}

// CourseByCode resolves a human readable course code such as "CS101".
func (r *CourseRepo) CourseByCode(ctx context.Context, code string) (*model.Course, error) {
    const q = `SELECT ` + courseColumns + ` FROM courses WHERE code = ?`
    course, err := scanCourse(r.db.QueryRowContext(ctx, q, code))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, schedule.ErrCourseNotFound
        }
        return nil, err
    }
    return course, nil
}

// CourseFilters narrows the course listing.
type CourseFilters struct {
    DepartmentID uint64
    InstructorID uint64
    Semester     string
}

// List returns courses matching the filters, ordered by code ascending.
func (r *CourseRepo) List(ctx context.Context, f CourseFilters) ([]model.Course, error) {
    q := `SELECT ` + courseColumns + ` FROM courses WHERE 1=1`
    args := make([]any, 0, 3)
    if f.DepartmentID != 0 {
        q += ` AND department_id = ?`
        args = append(args, f.DepartmentID)
    }
    if f.InstructorID != 0 {
        q += ` AND instructor_id = ?`
        args = append(args, f.InstructorID)
    }
    if f.Semester != "" {
        q += ` AND semester = ?`
        args = append(args, f.Semester)
    }
    q += ` ORDER BY code`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Course, 0)
    for rows.Next() {
        c, err := scanCourse(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// Create inserts a new course and assigns the generated ID back to the
// struct.  Used by the CSV seeder.
func (r *CourseRepo) Create(ctx context.Context, m *model.Course) error {
    const q = `INSERT INTO courses (name, code, department_id, instructor_id, credits, semester)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, m.Name, m.Code, m.DepartmentID, m.InstructorID, m.Credits, m.Semester)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// EnsureDepartment returns the ID of the department with the given code,
// creating the row when it does not exist yet.
func (r *CourseRepo) EnsureDepartment(ctx context.Context, code, name string) (uint64, error) {
    var id uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM departments WHERE code = ?`, code).Scan(&id)
    if err == nil {
        return id, nil
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return 0, err
    }
    res, err := r.db.ExecContext(ctx, `INSERT INTO departments (code, name) VALUES (?, ?)`, code, name)
    if err != nil {
        return 0, err
    }
    newID, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(newID), nil
}
