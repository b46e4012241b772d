package schedule

import (
    "context"
    "sort"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// ConflictDetector finds exams that collide with a candidate room/date/time
// slot.  It is a pure read: the detector consults the exam store and applies
// the Overlaps predicate, so calling it twice with the same arguments and no
// intervening writes yields identical results.
type ConflictDetector struct {
    Exams ExamStore
}

// NewConflictDetector constructs a detector over the given store.
func NewConflictDetector(exams ExamStore) *ConflictDetector {
    if exams == nil {
        panic("nil exam store passed to NewConflictDetector")
    }
    return &ConflictDetector{Exams: exams}
}

// FindConflicts returns every exam in the room on the date whose interval
// overlaps [start, end) and whose status is in statuses.  When excludeID is
// non-nil that exam is removed from consideration, so an update never
// conflicts with the exam's own current slot.  Results are ordered by date
// then start time ascending for deterministic conflict reporting.
func (d *ConflictDetector) FindConflicts(ctx context.Context, roomID uint64, date, start, end string, excludeID *uint64, statuses StatusSet) ([]model.Exam, error) {
    existing, err := d.Exams.ExamsByRoomAndDate(ctx, roomID, date)
    if err != nil {
        return nil, err
    }
    conflicts := make([]model.Exam, 0)
    for _, e := range existing {
        if excludeID != nil && e.ID == *excludeID {
            continue
        }
        if !statuses.Contains(e.Status) {
            continue
        }
        if Overlaps(e.StartTime, e.EndTime, start, end) {
            conflicts = append(conflicts, e)
        }
    }
    sort.SliceStable(conflicts, func(i, j int) bool {
        if conflicts[i].Date != conflicts[j].Date {
            return conflicts[i].Date < conflicts[j].Date
        }
        return conflicts[i].StartTime < conflicts[j].StartTime
    })
    return conflicts, nil
}
