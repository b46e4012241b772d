package schedule

import (
    "context"
    "testing"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

func TestAvailableRoomsSkipsOccupied(t *testing.T) {
    store := newFixture()
    s := NewAvailabilityScanner(store, NewConflictDetector(store))

    free, err := s.AvailableRooms(context.Background(), "2025-03-10", "10:30:00", "11:30:00", nil)
    if err != nil {
        t.Fatalf("AvailableRooms: %v", err)
    }
    // Room 1 is occupied, room 3 is flagged unavailable; only room 2 remains.
    if len(free) != 1 || free[0].ID != 2 {
        t.Fatalf("expected only room 2, got %v", free)
    }
}

func TestAvailableRoomsDisjointFromConflicts(t *testing.T) {
    store := newFixture()
    store.exams = append(store.exams, model.Exam{
        ID: 20, CourseID: 101, ExamType: model.ExamTypeFinal, Date: "2025-03-10",
        StartTime: "10:00:00", EndTime: "12:00:00", RoomID: 2, Status: model.ExamStatusCompleted,
    })
    detector := NewConflictDetector(store)
    s := NewAvailabilityScanner(store, detector)

    free, err := s.AvailableRooms(context.Background(), "2025-03-10", "10:30:00", "11:30:00", nil)
    if err != nil {
        t.Fatalf("AvailableRooms: %v", err)
    }
    // No returned room may have a blocking conflict for the same slot.
    for _, room := range free {
        conflicts, err := detector.FindConflicts(context.Background(), room.ID, "2025-03-10", "10:30:00", "11:30:00", nil, Blocking())
        if err != nil {
            t.Fatalf("FindConflicts: %v", err)
        }
        if len(conflicts) != 0 {
            t.Fatalf("room %d reported free but has conflicts %v", room.ID, conflicts)
        }
    }
    if len(free) != 0 {
        t.Fatalf("both candidate rooms are occupied, got %v", free)
    }
}

func TestAvailableRoomsAfterCancellation(t *testing.T) {
    store := newFixture()
    store.exams[0].Status = model.ExamStatusCancelled
    s := NewAvailabilityScanner(store, NewConflictDetector(store))

    free, err := s.AvailableRooms(context.Background(), "2025-03-10", "10:30:00", "11:30:00", nil)
    if err != nil {
        t.Fatalf("AvailableRooms: %v", err)
    }
    if len(free) != 2 {
        t.Fatalf("cancelling the exam should free room 1, got %v", free)
    }
}

func TestAvailableRoomsExcludeExam(t *testing.T) {
    store := newFixture()
    s := NewAvailabilityScanner(store, NewConflictDetector(store))

    self := uint64(10)
    free, err := s.AvailableRooms(context.Background(), "2025-03-10", "10:00:00", "11:00:00", &self)
    if err != nil {
        t.Fatalf("AvailableRooms: %v", err)
    }
    // Excluding exam 10 makes its own room available for the reschedule.
    if len(free) != 2 {
        t.Fatalf("expected rooms 1 and 2 to be free when excluding exam 10, got %v", free)
    }
}
