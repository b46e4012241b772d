package model

// Exam statuses.  An exam progresses scheduled -> confirmed -> completed,
// or moves to cancelled at any point before completion.  Cancelled exams
// are kept for audit but never block a room.
const (
    ExamStatusScheduled = "scheduled"
    ExamStatusConfirmed = "confirmed"
    ExamStatusCancelled = "cancelled"
    ExamStatusCompleted = "completed"
)

// Exam types.  A course may hold at most one non-cancelled exam of a
// given type per date.
const (
    ExamTypeMidterm = "midterm"
    ExamTypeFinal   = "final"
    ExamTypeQuiz    = "quiz"
    ExamTypeMakeup  = "makeup"
)

// ValidExamStatus reports whether s is one of the known exam statuses.
func ValidExamStatus(s string) bool {
    switch s {
    case ExamStatusScheduled, ExamStatusConfirmed, ExamStatusCancelled, ExamStatusCompleted:
        return true
    }
    return false
}

// ValidExamType reports whether t is one of the known exam types.
func ValidExamType(t string) bool {
    switch t {
    case ExamTypeMidterm, ExamTypeFinal, ExamTypeQuiz, ExamTypeMakeup:
        return true
    }
    return false
}

// Exam is the central scheduling entity: one exam sitting of a course
// in a room on a date over a time interval.  Date and time fields are
// stored in the DB formats ("2006-01-02" and "15:04:05", both UTC) so
// that interval comparisons can be performed lexicographically.
//
// Fields:
//  ID              – primary key identifier.
//  CourseID        – course being examined.
//  CourseCode      – code of the course (joined, read only).
//  DepartmentID    – department of the course (joined, read only).
//  InstructorID    – instructor of the course (joined, read only).
//  ExamType        – midterm, final, quiz or makeup.
//  Date            – exam date ("2006-01-02").
//  StartTime       – start of the interval ("15:04:05").
//  EndTime         – end of the interval ("15:04:05"); always after StartTime.
//  RoomID          – room where the exam takes place.
//  RoomName        – full room name (joined, read only).
//  DurationMinutes – informational duration derived from the interval.
//  MaxStudents     – seat limit; never exceeds the room capacity.
//  Status          – lifecycle status (see constants above).
//  Notes           – free text notes.
//  CreatedByID     – user who created the exam.
//  CreatedAt       – DB creation timestamp string.
//  UpdatedAt       – DB last update timestamp string.
type Exam struct {
    ID              uint64 `json:"id"`               // exams.id
    CourseID        uint64 `json:"course_id"`        // exams.course_id
    CourseCode      string `json:"course_code"`      // courses.code (joined)
    DepartmentID    uint64 `json:"department_id"`    // courses.department_id (joined)
    InstructorID    uint64 `json:"instructor_id"`    // courses.instructor_id (joined)
    ExamType        string `json:"exam_type"`        // exams.exam_type
    Date            string `json:"date"`             // exams.date ("2006-01-02")
    StartTime       string `json:"start_time"`       // exams.start_time ("15:04:05")
    EndTime         string `json:"end_time"`         // exams.end_time ("15:04:05")
    RoomID          uint64 `json:"room_id"`          // exams.room_id
    RoomName        string `json:"room"`             // building code + room name (joined)
    DurationMinutes uint32 `json:"duration_minutes"` // exams.duration_minutes
    MaxStudents     uint32 `json:"max_students"`     // exams.max_students
    Status          string `json:"status"`           // exams.status
    Notes           string `json:"notes"`            // exams.notes
    CreatedByID     uint64 `json:"created_by"`       // exams.created_by
    CreatedAt       string `json:"created_at"`       // exams.created_at
    UpdatedAt       string `json:"updated_at"`       // exams.updated_at
}

// ExamEnrollment links one student to one exam.  A student may enrol
// in a given exam at most once; deleting the exam removes its
// enrollments.
//
// Fields:
//  ID         – primary key identifier.
//  ExamID     – exam being taken.
//  StudentID  – enrolled student.
//  EnrolledAt – DB timestamp of the enrollment.
type ExamEnrollment struct {
    ID         uint64 `json:"id"`          // exam_enrollments.id
    ExamID     uint64 `json:"exam_id"`     // exam_enrollments.exam_id
    StudentID  uint64 `json:"student_id"`  // exam_enrollments.student_id
    EnrolledAt string `json:"enrolled_at"` // exam_enrollments.enrolled_at
}
