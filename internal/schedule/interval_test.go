package schedule

import "testing"

func TestOverlapsHalfOpen(t *testing.T) {
    cases := []struct {
        name           string
        s1, e1, s2, e2 string
        want           bool
    }{
        {"partial overlap", "10:00:00", "11:00:00", "10:30:00", "11:30:00", true},
        {"contained", "10:00:00", "12:00:00", "10:30:00", "11:00:00", true},
        {"identical", "10:00:00", "11:00:00", "10:00:00", "11:00:00", true},
        {"back to back after", "10:00:00", "11:00:00", "11:00:00", "12:00:00", false},
        {"back to back before", "11:00:00", "12:00:00", "10:00:00", "11:00:00", false},
        {"disjoint", "08:00:00", "09:00:00", "10:00:00", "11:00:00", false},
        {"one minute overlap", "10:00:00", "11:01:00", "11:00:00", "12:00:00", true},
    }
    for _, tc := range cases {
        if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
            t.Errorf("%s: Overlaps(%s,%s,%s,%s) = %v, want %v", tc.name, tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
        }
        // The predicate is symmetric: each interval must see the other.
        if got := Overlaps(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
            t.Errorf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
        }
    }
}

func TestNormalizeTimeOfDay(t *testing.T) {
    if got, err := NormalizeTimeOfDay("10:30"); err != nil || got != "10:30:00" {
        t.Errorf("NormalizeTimeOfDay(10:30) = %q, %v", got, err)
    }
    if got, err := NormalizeTimeOfDay("10:30:15"); err != nil || got != "10:30:15" {
        t.Errorf("NormalizeTimeOfDay(10:30:15) = %q, %v", got, err)
    }
    if _, err := NormalizeTimeOfDay("25:00"); err == nil {
        t.Error("expected error for 25:00")
    }
    if _, err := NormalizeTimeOfDay("noon"); err == nil {
        t.Error("expected error for non-numeric time")
    }
}

func TestNormalizeDate(t *testing.T) {
    if got, err := NormalizeDate("2025-03-10"); err != nil || got != "2025-03-10" {
        t.Errorf("NormalizeDate = %q, %v", got, err)
    }
    if _, err := NormalizeDate("2025-13-41"); err == nil {
        t.Error("expected error for impossible date")
    }
}

func TestDurationMinutes(t *testing.T) {
    if got := DurationMinutes("10:00:00", "11:30:00"); got != 90 {
        t.Errorf("DurationMinutes = %d, want 90", got)
    }
    if got := DurationMinutes("11:00:00", "10:00:00"); got != 0 {
        t.Errorf("DurationMinutes on inverted interval = %d, want 0", got)
    }
}
