package schedule

import (
    "context"

    "github.com/iliyamo/exam-scheduler/internal/model"
)

// fakeStore is an in-memory ExamStore and RoomDirectory used by the tests
// in this package.  Exams are matched by room/date and course/type/date on
// every call, mimicking the indexed queries of the SQL repository.
type fakeStore struct {
    rooms []model.Room
    exams []model.Exam
}

func (f *fakeStore) RoomByID(_ context.Context, id uint64) (*model.Room, error) {
    for i := range f.rooms {
        if f.rooms[i].ID == id {
            r := f.rooms[i]
            return &r, nil
        }
    }
    return nil, ErrRoomNotFound
}

func (f *fakeStore) RoomByName(_ context.Context, buildingCode, name string) (*model.Room, error) {
    for i := range f.rooms {
        if f.rooms[i].BuildingCode == buildingCode && f.rooms[i].Name == name {
            r := f.rooms[i]
            return &r, nil
        }
    }
    return nil, ErrRoomNotFound
}

func (f *fakeStore) AvailableRooms(_ context.Context) ([]model.Room, error) {
    out := make([]model.Room, 0, len(f.rooms))
    for _, r := range f.rooms {
        if r.IsAvailable {
            out = append(out, r)
        }
    }
    return out, nil
}

func (f *fakeStore) ExamsByRoomAndDate(_ context.Context, roomID uint64, date string) ([]model.Exam, error) {
    var out []model.Exam
    for _, e := range f.exams {
        if e.RoomID == roomID && e.Date == date {
            out = append(out, e)
        }
    }
    return out, nil
}

func (f *fakeStore) ExamsForSlot(_ context.Context, courseID uint64, examType, date string) ([]model.Exam, error) {
    var out []model.Exam
    for _, e := range f.exams {
        if e.CourseID == courseID && e.ExamType == examType && e.Date == date {
            out = append(out, e)
        }
    }
    return out, nil
}

// room101 and friends are the reference fixtures shared across tests.
func newFixture() *fakeStore {
    return &fakeStore{
        rooms: []model.Room{
            {ID: 1, BuildingID: 1, BuildingCode: "ENG", Name: "101", Capacity: 30, IsAvailable: true},
            {ID: 2, BuildingID: 1, BuildingCode: "ENG", Name: "102", Capacity: 60, IsAvailable: true},
            {ID: 3, BuildingID: 2, BuildingCode: "SCI", Name: "201", Capacity: 120, IsAvailable: false},
        },
        exams: []model.Exam{
            {
                ID: 10, CourseID: 100, CourseCode: "CS101", DepartmentID: 7, InstructorID: 50,
                ExamType: model.ExamTypeMidterm, Date: "2025-03-10",
                StartTime: "10:00:00", EndTime: "11:00:00",
                RoomID: 1, MaxStudents: 25, Status: model.ExamStatusScheduled,
            },
        },
    }
}
