package queue

import (
    "strings"
    "testing"
)

func TestFormatLogLine(t *testing.T) {
    line := formatLogLine(ExamScheduleChangedEvent{
        Action:      ActionCreated,
        ExamID:      42,
        CourseCode:  "CS101",
        ExamType:    "midterm",
        Date:        "2025-03-10",
        StartTime:   "10:00:00",
        EndTime:     "11:00:00",
        RoomName:    "ENG-101",
        MaxStudents: 25,
        Status:      "scheduled",
        OccurredAt:  "2025-03-01T09:00:00Z",
    })
    if !strings.HasSuffix(line, "\n") {
        t.Error("log line must end with a newline")
    }
    for _, want := range []string{
        "Exam created", "exam_id=42", "course=CS101", "slot=10:00:00-11:00:00",
        "room=ENG-101", "status=scheduled", "max_students=25",
    } {
        if !strings.Contains(line, want) {
            t.Errorf("log line missing %q: %s", want, line)
        }
    }
    if strings.Count(line, "\n") != 1 {
        t.Error("log line must be a single line")
    }
}
