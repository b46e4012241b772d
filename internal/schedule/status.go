package schedule

import "github.com/iliyamo/exam-scheduler/internal/model"

// StatusSet is a set of exam statuses used to decide which exams
// participate in a conflict evaluation.
type StatusSet map[string]bool

// Blocking returns the statuses that occupy a room.  The policy is
// uniform across creation, update and availability scanning: every
// status except cancelled blocks, because a completed exam still
// physically occupied the room for its slot and a second booking in
// the same interval is nonsensical regardless of lifecycle state.
func Blocking() StatusSet {
    return StatusSet{
        model.ExamStatusScheduled: true,
        model.ExamStatusConfirmed: true,
        model.ExamStatusCompleted: true,
    }
}

// Contains reports whether status is a member of the set.
func (s StatusSet) Contains(status string) bool {
    return s[status]
}
