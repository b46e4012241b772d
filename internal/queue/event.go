// Package queue defines message payloads exchanged over the message broker.
package queue

// Schedule change actions carried by ExamScheduleChangedEvent.
const (
    ActionCreated   = "created"
    ActionUpdated   = "updated"
    ActionCancelled = "cancelled"
    ActionDeleted   = "deleted"
)

// ExamScheduleChangedEvent is published whenever an exam is created,
// rescheduled, cancelled or deleted.  It contains enough information for
// the notification collaborator to build messages for affected students
// and instructors without querying the primary database.
type ExamScheduleChangedEvent struct {
    Action      string `json:"action"`
    ExamID      uint64 `json:"exam_id"`
    CourseCode  string `json:"course_code"`
    ExamType    string `json:"exam_type"`
    Date        string `json:"date"`
    StartTime   string `json:"start_time"`
    EndTime     string `json:"end_time"`
    RoomName    string `json:"room"`
    MaxStudents uint32 `json:"max_students"`
    Status      string `json:"status"`
    OccurredAt  string `json:"occurred_at"`
}
