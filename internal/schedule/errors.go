package schedule

import "fmt"

// Code identifies a class of validation failure.  Codes are stable API
// values: handlers serialize them verbatim so clients can branch on them.
type Code string

const (
    // CodeInvalidInterval – end_time is not strictly after start_time.
    CodeInvalidInterval Code = "invalid_interval"
    // CodeCapacityExceeded – max_students exceeds the room capacity.
    CodeCapacityExceeded Code = "capacity_exceeded"
    // CodePastDate – a new exam was placed on a date before today.
    CodePastDate Code = "past_date"
    // CodeRoomConflict – another exam occupies the room in the same interval.
    CodeRoomConflict Code = "room_conflict"
    // CodeDuplicateExamSlot – the course already has a non-cancelled exam of
    // this type on this date.
    CodeDuplicateExamSlot Code = "duplicate_exam_slot"
)

// ValidationError describes one recoverable, user-facing rule violation.
// Validation errors are data, not process failures: handlers return them
// with a 4xx status and never log them as errors.
//
// Fields:
//  Code    – machine readable failure class.
//  Message – human readable explanation.
//  ExamIDs – IDs of colliding exams, for room_conflict and
//            duplicate_exam_slot; empty otherwise.
type ValidationError struct {
    Code    Code     `json:"code"`
    Message string   `json:"message"`
    ExamIDs []uint64 `json:"exam_ids,omitempty"`
}

// Error implements the error interface so a single ValidationError can be
// propagated through error-returning call chains when convenient.
func (v ValidationError) Error() string {
    return fmt.Sprintf("%s: %s", v.Code, v.Message)
}
