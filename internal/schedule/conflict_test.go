package schedule

import (
    "context"
    "testing"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

func TestFindConflictsOverlapping(t *testing.T) {
    store := newFixture()
    d := NewConflictDetector(store)

    conflicts, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "10:30:00", "11:30:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(conflicts) != 1 || conflicts[0].ID != 10 {
        t.Fatalf("expected conflict with exam 10, got %v", conflicts)
    }
}

func TestFindConflictsBackToBack(t *testing.T) {
    store := newFixture()
    d := NewConflictDetector(store)

    // The fixture exam ends at 11:00; a slot starting exactly then is legal.
    conflicts, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "11:00:00", "12:00:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(conflicts) != 0 {
        t.Fatalf("back-to-back slot should be free, got %v", conflicts)
    }
}

func TestFindConflictsCancelledNeverBlocks(t *testing.T) {
    store := newFixture()
    store.exams[0].Status = model.ExamStatusCancelled
    d := NewConflictDetector(store)

    conflicts, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "10:00:00", "11:00:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(conflicts) != 0 {
        t.Fatalf("cancelled exam must not block, got %v", conflicts)
    }
}

func TestFindConflictsCompletedStillBlocks(t *testing.T) {
    store := newFixture()
    store.exams[0].Status = model.ExamStatusCompleted
    d := NewConflictDetector(store)

    conflicts, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "10:00:00", "11:00:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(conflicts) != 1 {
        t.Fatalf("completed exam still occupies the room, got %v", conflicts)
    }
}

func TestFindConflictsExcludesSelf(t *testing.T) {
    store := newFixture()
    d := NewConflictDetector(store)

    self := uint64(10)
    conflicts, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "10:00:00", "11:00:00", &self, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(conflicts) != 0 {
        t.Fatalf("exam must not conflict with itself, got %v", conflicts)
    }
}

func TestFindConflictsOrderedAndIdempotent(t *testing.T) {
    store := newFixture()
    store.exams = append(store.exams,
        model.Exam{ID: 12, CourseID: 101, ExamType: model.ExamTypeQuiz, Date: "2025-03-10",
            StartTime: "12:00:00", EndTime: "13:00:00", RoomID: 1, Status: model.ExamStatusConfirmed},
        model.Exam{ID: 11, CourseID: 102, ExamType: model.ExamTypeQuiz, Date: "2025-03-10",
            StartTime: "09:30:00", EndTime: "10:30:00", RoomID: 1, Status: model.ExamStatusConfirmed},
    )
    d := NewConflictDetector(store)

    first, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "09:00:00", "18:00:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(first) != 3 {
        t.Fatalf("expected 3 conflicts, got %d", len(first))
    }
    for i := 1; i < len(first); i++ {
        if first[i-1].StartTime > first[i].StartTime {
            t.Fatalf("conflicts not ordered by start time: %v", first)
        }
    }
    second, err := d.FindConflicts(context.Background(), 1, "2025-03-10", "09:00:00", "18:00:00", nil, Blocking())
    if err != nil {
        t.Fatalf("FindConflicts: %v", err)
    }
    if len(second) != len(first) {
        t.Fatalf("detector not idempotent: %d vs %d", len(first), len(second))
    }
    for i := range first {
        if first[i].ID != second[i].ID {
            t.Fatalf("detector not idempotent at index %d: %d vs %d", i, first[i].ID, second[i].ID)
        }
    }
}
