// Package schedule implements the conflict-detection and scheduling-validity
// core: interval overlap, exam validation, room availability scanning and
// role-based visibility scoping.  The package holds no state of its own and
// reads rooms, courses and exams exclusively through the injected directory
// interfaces, so the same logic runs against MySQL in production and against
// in-memory fakes in tests.
package schedule

import (
    "errors"
    "fmt"
    "time"
)

// DateFormat and TimeFormat are the canonical wire/storage formats for exam
// dates and times of day.  All comparisons in this package assume values in
// these formats; with zero padding, lexicographic order equals temporal order.
const (
    DateFormat = "2006-01-02"
    TimeFormat = "15:04:05"
)

// ErrBadDate and ErrBadTime are returned by the normalization helpers when
// an input cannot be parsed.
var (
    ErrBadDate = errors.New("invalid date")
    ErrBadTime = errors.New("invalid time of day")
)

// NormalizeDate parses s as a calendar date and returns it in DateFormat.
func NormalizeDate(s string) (string, error) {
    t, err := time.Parse(DateFormat, s)
    if err != nil {
        return "", fmt.Errorf("%w: %q", ErrBadDate, s)
    }
    return t.Format(DateFormat), nil
}

// NormalizeTimeOfDay parses s as a time of day, accepting "15:04" and
// "15:04:05", and returns it in TimeFormat.
func NormalizeTimeOfDay(s string) (string, error) {
    for _, layout := range []string{TimeFormat, "15:04"} {
        if t, err := time.Parse(layout, s); err == nil {
            return t.Format(TimeFormat), nil
        }
    }
    return "", fmt.Errorf("%w: %q", ErrBadTime, s)
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Intervals that merely touch (one ending exactly when the other
// starts) do not overlap, so back-to-back exams in the same room are legal.
// This is the single overlap predicate in the codebase; every conflict
// evaluation (creation, update, availability scanning and the transactional
// re-check in the exam repository) goes through it.
func Overlaps(s1, e1, s2, e2 string) bool {
    return s1 < e2 && s2 < e1
}

// DurationMinutes returns the number of whole minutes between start and end.
// It is informational only; start and end remain authoritative.
func DurationMinutes(start, end string) uint32 {
    s, err1 := time.Parse(TimeFormat, start)
    e, err2 := time.Parse(TimeFormat, end)
    if err1 != nil || err2 != nil || !e.After(s) {
        return 0
    }
    return uint32(e.Sub(s) / time.Minute)
}
