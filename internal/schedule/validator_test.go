package schedule

import (
    "context"
    "testing"
    "time"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

func newValidator(store *fakeStore) *Validator {
    v := NewValidator(store, NewConflictDetector(store))
    v.Now = func() time.Time {
        return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
    }
    return v
}

func hasCode(violations []ValidationError, code Code) bool {
    for _, v := range violations {
        if v.Code == code {
            return true
        }
    }
    return false
}

func TestValidateInvalidIntervalShortCircuits(t *testing.T) {
    v := newValidator(newFixture())

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 100, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "11:00:00", EndTime: "10:00:00",
        RoomID: 1, MaxStudents: 500, // would also exceed capacity, but must not be reported
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if len(violations) != 1 || violations[0].Code != CodeInvalidInterval {
        t.Fatalf("expected only invalid_interval, got %v", violations)
    }
}

func TestValidateZeroLengthInterval(t *testing.T) {
    v := newValidator(newFixture())

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 100, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "10:00:00", EndTime: "10:00:00", RoomID: 1, MaxStudents: 10,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if !hasCode(violations, CodeInvalidInterval) {
        t.Fatalf("zero-length interval must be rejected, got %v", violations)
    }
}

func TestValidateCapacityExceeded(t *testing.T) {
    v := newValidator(newFixture())

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-03-11",
        StartTime: "10:00:00", EndTime: "11:00:00", RoomID: 1, MaxStudents: 31,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    // No time conflict exists on that date; capacity alone must fail it.
    if len(violations) != 1 || violations[0].Code != CodeCapacityExceeded {
        t.Fatalf("expected only capacity_exceeded, got %v", violations)
    }
}

func TestValidatePastDateCreateOnly(t *testing.T) {
    v := newValidator(newFixture())

    past := Candidate{
        CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-02-20",
        StartTime: "10:00:00", EndTime: "11:00:00", RoomID: 2, MaxStudents: 10,
    }
    violations, err := v.Validate(context.Background(), past)
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if !hasCode(violations, CodePastDate) {
        t.Fatalf("creation on a past date must be rejected, got %v", violations)
    }

    // Same candidate as an update of an existing exam is exempt.
    id := uint64(999)
    past.ExamID = &id
    violations, err = v.Validate(context.Background(), past)
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if hasCode(violations, CodePastDate) {
        t.Fatalf("updates are exempt from the past-date rule, got %v", violations)
    }
}

func TestValidateRoomConflictNamesCollidingExam(t *testing.T) {
    v := newValidator(newFixture())

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "10:30:00", EndTime: "11:30:00", RoomID: 1, MaxStudents: 10,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if len(violations) != 1 || violations[0].Code != CodeRoomConflict {
        t.Fatalf("expected only room_conflict, got %v", violations)
    }
    if len(violations[0].ExamIDs) != 1 || violations[0].ExamIDs[0] != 10 {
        t.Fatalf("room_conflict must name exam 10, got %v", violations[0].ExamIDs)
    }
}

func TestValidateBackToBackAllowed(t *testing.T) {
    v := newValidator(newFixture())

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "11:00:00", EndTime: "12:00:00", RoomID: 1, MaxStudents: 10,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if len(violations) != 0 {
        t.Fatalf("back-to-back slot must validate cleanly, got %v", violations)
    }
}

func TestValidateAfterCancellationSlotIsFree(t *testing.T) {
    store := newFixture()
    store.exams[0].Status = model.ExamStatusCancelled
    v := newValidator(store)

    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "10:30:00", EndTime: "11:30:00", RoomID: 1, MaxStudents: 10,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if len(violations) != 0 {
        t.Fatalf("cancelled exam must not block the retried slot, got %v", violations)
    }
}

func TestValidateDuplicateExamSlot(t *testing.T) {
    v := newValidator(newFixture())

    // Same course, same type, same date, different room and time.
    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 100, ExamType: model.ExamTypeMidterm, Date: "2025-03-10",
        StartTime: "14:00:00", EndTime: "15:00:00", RoomID: 2, MaxStudents: 10,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    if len(violations) != 1 || violations[0].Code != CodeDuplicateExamSlot {
        t.Fatalf("expected only duplicate_exam_slot, got %v", violations)
    }
}

func TestValidateAccumulatesBusinessFailures(t *testing.T) {
    v := newValidator(newFixture())

    // Overbook room 1 while colliding with exam 10 and duplicating its slot.
    violations, err := v.Validate(context.Background(), Candidate{
        CourseID: 100, ExamType: model.ExamTypeMidterm, Date: "2025-03-10",
        StartTime: "10:00:00", EndTime: "11:00:00", RoomID: 1, MaxStudents: 45,
    })
    if err != nil {
        t.Fatalf("Validate: %v", err)
    }
    for _, code := range []Code{CodeCapacityExceeded, CodeRoomConflict, CodeDuplicateExamSlot} {
        if !hasCode(violations, code) {
            t.Errorf("expected %s among %v", code, violations)
        }
    }
}

func TestValidateUnknownRoomIsInfraError(t *testing.T) {
    v := newValidator(newFixture())

    _, err := v.Validate(context.Background(), Candidate{
        CourseID: 100, ExamType: model.ExamTypeMidterm, Date: "2025-03-10",
        StartTime: "10:00:00", EndTime: "11:00:00", RoomID: 404, MaxStudents: 10,
    })
    if err == nil {
        t.Fatal("expected error for unknown room")
    }
}
