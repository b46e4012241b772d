package model

import "time"

// Department represents an academic department.  Courses and users
// reference departments; the visibility rules for students and
// instructors are scoped by department membership.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique department name.
//  Code      – unique short code (e.g. "CS").
//  CreatedAt – timestamp when the department was created.
type Department struct {
    ID        uint64    `json:"id"`         // departments.id
    Name      string    `json:"name"`       // departments.name
    Code      string    `json:"code"`       // departments.code
    CreatedAt time.Time `json:"created_at"` // departments.created_at
}

// Course represents a taught course for which exams are scheduled.
// A course belongs to exactly one department and one instructor.
// Courses are directory data: the scheduling core reads them but
// never mutates them.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – course title.
//  Code         – unique course code (e.g. "CS101").
//  DepartmentID – owning department.
//  InstructorID – user ID of the instructor teaching the course.
//  Credits      – credit value of the course.
//  Semester     – semester label (e.g. "Fall 2025").
type Course struct {
    ID           uint64 `json:"id"`            // courses.id
    Name         string `json:"name"`          // courses.name
    Code         string `json:"code"`          // courses.code
    DepartmentID uint64 `json:"department_id"` // courses.department_id
    InstructorID uint64 `json:"instructor_id"` // courses.instructor_id
    Credits      uint32 `json:"credits"`       // courses.credits
    Semester     string `json:"semester"`      // courses.semester
}
