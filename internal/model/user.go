package model

import "time"

// User roles.  The role set is closed: every user is exactly one of
// admin, instructor or student, and visibility scoping dispatches on
// this value in a single place (schedule.ScopeFor).
const (
    RoleAdmin      = "admin"
    RoleInstructor = "instructor"
    RoleStudent    = "student"
)

// ValidRole reports whether r is one of the known user roles.
func ValidRole(r string) bool {
    switch r {
    case RoleAdmin, RoleInstructor, RoleStudent:
        return true
    }
    return false
}

// User represents an application user record as stored in the
// `users` table.  Identity management itself lives outside this
// service; users are read here to verify credentials and to scope
// exam visibility by role and department.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – admin, instructor or student.
//  DepartmentID – department the user belongs to (nil for admins).
//  StudentNo    – unique student number (nil for staff).
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    `json:"id"`                   // users.id
    Username     string    `json:"username"`             // users.username
    Email        string    `json:"email"`                // users.email
    PasswordHash string    `json:"-"`                    // users.password_hash (never serialized)
    Role         string    `json:"role"`                 // users.role
    DepartmentID *uint64   `json:"department_id"`        // users.department_id (nullable)
    StudentNo    *string   `json:"student_no,omitempty"` // users.student_no (nullable)
    IsActive     bool      `json:"is_active"`            // users.is_active
    CreatedAt    time.Time `json:"created_at"`           // users.created_at
    UpdatedAt    time.Time `json:"updated_at"`           // users.updated_at
}
