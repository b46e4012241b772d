package schedule

import (
    "context"
    "fmt"
    "time"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// Candidate carries the schedule-relevant attributes of an exam about to be
// created or updated.  Date, StartTime and EndTime must already be in the
// canonical formats (see NormalizeDate / NormalizeTimeOfDay).
//
// Fields:
//  ExamID      – ID of the exam being updated, nil on creation.  A non-nil
//                value excludes the exam from its own conflict check and
//                exempts it from the past-date rule, since edits to a
//                historical exam's notes must remain possible.
//  CourseID    – course being examined.
//  ExamType    – midterm, final, quiz or makeup.
//  Date        – exam date.
//  StartTime   – interval start.
//  EndTime     – interval end.
//  RoomID      – target room.
//  MaxStudents – requested seat limit.
type Candidate struct {
    ExamID      *uint64
    CourseID    uint64
    ExamType    string
    Date        string
    StartTime   string
    EndTime     string
    RoomID      uint64
    MaxStudents uint32
}

// Validator enforces the intrinsic and cross-exam invariants of a candidate
// exam slot.  It performs no writes; persistence and its transactional
// re-check belong to the caller.
type Validator struct {
    Rooms    RoomDirectory
    Detector *ConflictDetector
    // Now supplies the current time for the past-date rule.  Tests pin it;
    // production leaves it nil and gets time.Now in UTC.
    Now func() time.Time
}

// NewValidator constructs a Validator over the given directory and detector.
func NewValidator(rooms RoomDirectory, detector *ConflictDetector) *Validator {
    if rooms == nil || detector == nil {
        panic("nil dependency passed to NewValidator")
    }
    return &Validator{Rooms: rooms, Detector: detector}
}

func (v *Validator) now() time.Time {
    if v.Now != nil {
        return v.Now()
    }
    return time.Now().UTC()
}

// Validate checks the candidate against every scheduling rule and returns
// the accumulated violations.  An empty slice means the slot is legal.  The
// interval-order check short-circuits: with end before start the remaining
// rules would evaluate a nonsensical interval, so they are skipped.  All
// later rules accumulate, so a caller sees every fixable problem at once.
// The returned error is reserved for infrastructure failures (directory or
// store reads); it is never a rule violation.
func (v *Validator) Validate(ctx context.Context, c Candidate) ([]ValidationError, error) {
    if c.EndTime <= c.StartTime {
        return []ValidationError{{
            Code:    CodeInvalidInterval,
            Message: "end time must be after start time",
        }}, nil
    }

    var violations []ValidationError

    room, err := v.Rooms.RoomByID(ctx, c.RoomID)
    if err != nil {
        return nil, err
    }
    if c.MaxStudents > room.Capacity {
        violations = append(violations, ValidationError{
            Code: CodeCapacityExceeded,
            Message: fmt.Sprintf("maximum students (%d) exceeds capacity of room %s (%d)",
                c.MaxStudents, room.FullName(), room.Capacity),
        })
    }

    if c.ExamID == nil {
        today := v.now().Format(DateFormat)
        if c.Date < today {
            violations = append(violations, ValidationError{
                Code:    CodePastDate,
                Message: "cannot schedule an exam in the past",
            })
        }
    }

    conflicts, err := v.Detector.FindConflicts(ctx, c.RoomID, c.Date, c.StartTime, c.EndTime, c.ExamID, Blocking())
    if err != nil {
        return nil, err
    }
    if len(conflicts) > 0 {
        ids := make([]uint64, 0, len(conflicts))
        for _, e := range conflicts {
            ids = append(ids, e.ID)
        }
        violations = append(violations, ValidationError{
            Code:    CodeRoomConflict,
            Message: fmt.Sprintf("room %s is not available at this time", room.FullName()),
            ExamIDs: ids,
        })
    }

    slotExams, err := v.Detector.Exams.ExamsForSlot(ctx, c.CourseID, c.ExamType, c.Date)
    if err != nil {
        return nil, err
    }
    var dupIDs []uint64
    for _, e := range slotExams {
        if c.ExamID != nil && e.ID == *c.ExamID {
            continue
        }
        if e.Status == model.ExamStatusCancelled {
            continue
        }
        dupIDs = append(dupIDs, e.ID)
    }
    if len(dupIDs) > 0 {
        violations = append(violations, ValidationError{
            Code:    CodeDuplicateExamSlot,
            Message: fmt.Sprintf("course already has a %s exam on %s", c.ExamType, c.Date),
            ExamIDs: dupIDs,
        })
    }

    return violations, nil
}
