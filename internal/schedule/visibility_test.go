package schedule

import (
    "testing"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

func deptPtr(d uint64) *uint64 { return &d }

func TestScopeForAdmin(t *testing.T) {
    scope, err := ScopeFor(&model.User{ID: 1, Role: model.RoleAdmin})
    if err != nil {
        t.Fatalf("ScopeFor: %v", err)
    }
    if !scope.All {
        t.Fatal("admin scope must be unrestricted")
    }
    if !scope.Allows(99, 98) {
        t.Fatal("admin must see every exam")
    }
}

func TestScopeForStudent(t *testing.T) {
    scope, err := ScopeFor(&model.User{ID: 2, Role: model.RoleStudent, DepartmentID: deptPtr(7)})
    if err != nil {
        t.Fatalf("ScopeFor: %v", err)
    }
    if !scope.Allows(7, 50) {
        t.Fatal("student must see exams of their own department")
    }
    if scope.Allows(8, 50) {
        t.Fatal("student must not see exams of another department")
    }
}

func TestScopeForInstructor(t *testing.T) {
    scope, err := ScopeFor(&model.User{ID: 50, Role: model.RoleInstructor, DepartmentID: deptPtr(7)})
    if err != nil {
        t.Fatalf("ScopeFor: %v", err)
    }
    if !scope.Allows(7, 99) {
        t.Fatal("instructor must see department exams")
    }
    if !scope.Allows(8, 50) {
        t.Fatal("instructor must see exams of their own courses in other departments")
    }
    if scope.Allows(8, 99) {
        t.Fatal("instructor must not see unrelated exams")
    }
}

func TestScopeForUnknownRole(t *testing.T) {
    if _, err := ScopeFor(&model.User{ID: 3, Role: "registrar"}); err == nil {
        t.Fatal("expected error for unknown role")
    }
}

func TestScopeWithoutDepartmentMatchesNothing(t *testing.T) {
    scope, err := ScopeFor(&model.User{ID: 4, Role: model.RoleStudent})
    if err != nil {
        t.Fatalf("ScopeFor: %v", err)
    }
    if scope.Allows(0, 0) || scope.Allows(7, 50) {
        t.Fatal("department-less student must match no exams")
    }
}

func TestFiltersMatch(t *testing.T) {
    exam := &model.Exam{
        DepartmentID: 7, Date: "2025-03-10",
        Status: model.ExamStatusScheduled,
    }
    cases := []struct {
        name string
        f    Filters
        want bool
    }{
        {"empty", Filters{}, true},
        {"department match", Filters{DepartmentID: 7}, true},
        {"department miss", Filters{DepartmentID: 8}, false},
        {"date range inside", Filters{DateFrom: "2025-03-01", DateTo: "2025-03-31"}, true},
        {"date before range", Filters{DateFrom: "2025-03-11"}, false},
        {"date after range", Filters{DateTo: "2025-03-09"}, false},
        {"status match", Filters{Status: model.ExamStatusScheduled}, true},
        {"status miss", Filters{Status: model.ExamStatusCancelled}, false},
        {"conjunctive", Filters{DepartmentID: 7, Status: model.ExamStatusCancelled}, false},
    }
    for _, tc := range cases {
        if got := tc.f.Match(exam); got != tc.want {
            t.Errorf("%s: Match = %v, want %v", tc.name, got, tc.want)
        }
    }
}
