package schedule

import (
    "context"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// AvailabilityScanner answers "which rooms are free for this slot" by
// running the conflict detector across the full room directory.  The scan
// is O(rooms × exams_in_room_on_date), which is fine at institutional scale
// because the store indexes exams by (room, date).
type AvailabilityScanner struct {
    Rooms    RoomDirectory
    Detector *ConflictDetector
}

// NewAvailabilityScanner constructs a scanner over the given directory and
// detector.
func NewAvailabilityScanner(rooms RoomDirectory, detector *ConflictDetector) *AvailabilityScanner {
    if rooms == nil || detector == nil {
        panic("nil dependency passed to NewAvailabilityScanner")
    }
    return &AvailabilityScanner{Rooms: rooms, Detector: detector}
}

// AvailableRooms returns every available room with no blocking exam
// overlapping [start, end) on the date.  excludeID is forwarded to the
// detector so that rescheduling an exam does not count its current slot
// against the rooms it could move to.
func (s *AvailabilityScanner) AvailableRooms(ctx context.Context, date, start, end string, excludeID *uint64) ([]model.Room, error) {
    rooms, err := s.Rooms.AvailableRooms(ctx)
    if err != nil {
        return nil, err
    }
    free := make([]model.Room, 0, len(rooms))
    for _, room := range rooms {
        conflicts, err := s.Detector.FindConflicts(ctx, room.ID, date, start, end, excludeID, Blocking())
        if err != nil {
            return nil, err
        }
        if len(conflicts) == 0 {
            free = append(free, room)
        }
    }
    return free, nil
}
