package main // CSV seeder: imports reference data so a fresh instance has a directory to schedule against

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/iliyamo/exam-scheduler/internal/config"
	"github.com/iliyamo/exam-scheduler/internal/database"
	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

// CSV row shapes.  References between files use human readable codes
// (building code, department code, instructor email) rather than IDs so
// the files can be edited by hand.

type buildingRow struct {
	Code    string `csv:"code"`
	Name    string `csv:"name"`
	Address string `csv:"address"`
}

type roomRow struct {
	BuildingCode  string `csv:"building_code"`
	Name          string `csv:"name"`
	Capacity      uint32 `csv:"capacity"`
	RoomType      string `csv:"room_type"`
	HasProjector  bool   `csv:"has_projector"`
	HasComputer   bool   `csv:"has_computer"`
	HasWhiteboard bool   `csv:"has_whiteboard"`
	IsAvailable   bool   `csv:"is_available"`
	Notes         string `csv:"notes"`
}

type userRow struct {
	Username       string `csv:"username"`
	Email          string `csv:"email"`
	Password       string `csv:"password"`
	Role           string `csv:"role"`
	DepartmentCode string `csv:"department_code"`
	StudentNo      string `csv:"student_no"`
}

type courseRow struct {
	Code            string `csv:"code"`
	Name            string `csv:"name"`
	DepartmentCode  string `csv:"department_code"`
	InstructorEmail string `csv:"instructor_email"`
	Credits         uint32 `csv:"credits"`
	Semester        string `csv:"semester"`
}

func readCSV[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func main() {
	dir := "data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	roomRepo := repository.NewRoomRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	userRepo := repository.NewUserRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Buildings first: rooms reference them.
	buildings, err := readCSV[buildingRow](dir + "/buildings.csv")
	if err != nil {
		log.Fatalf("buildings.csv: %v", err)
	}
	buildingIDs := make(map[string]uint64, len(buildings))
	for _, b := range buildings {
		id, err := roomRepo.EnsureBuilding(ctx, b.Code, b.Name, b.Address)
		if err != nil {
			log.Fatalf("building %s: %v", b.Code, err)
		}
		buildingIDs[b.Code] = id
	}
	log.Printf("buildings: %d", len(buildings))

	rooms, err := readCSV[roomRow](dir + "/rooms.csv")
	if err != nil {
		log.Fatalf("rooms.csv: %v", err)
	}
	created := 0
	for _, r := range rooms {
		buildingID, ok := buildingIDs[r.BuildingCode]
		if !ok {
			log.Fatalf("room %s-%s: unknown building code", r.BuildingCode, r.Name)
		}
		if _, err := roomRepo.RoomByName(ctx, r.BuildingCode, r.Name); err == nil {
			continue // already seeded
		} else if !errors.Is(err, schedule.ErrRoomNotFound) {
			log.Fatalf("room %s-%s: %v", r.BuildingCode, r.Name, err)
		}
		room := model.Room{
			BuildingID:    buildingID,
			Name:          r.Name,
			Capacity:      r.Capacity,
			RoomType:      r.RoomType,
			HasProjector:  r.HasProjector,
			HasComputer:   r.HasComputer,
			HasWhiteboard: r.HasWhiteboard,
			IsAvailable:   r.IsAvailable,
			Notes:         r.Notes,
		}
		if err := roomRepo.Create(ctx, &room); err != nil {
			log.Fatalf("room %s-%s: %v", r.BuildingCode, r.Name, err)
		}
		created++
	}
	log.Printf("rooms: %d new of %d", created, len(rooms))

	// Users before courses: courses reference their instructor by email.
	users, err := readCSV[userRow](dir + "/users.csv")
	if err != nil {
		log.Fatalf("users.csv: %v", err)
	}
	userIDs := make(map[string]uint64, len(users))
	created = 0
	for _, row := range users {
		if row.Role != "" && !model.ValidRole(row.Role) {
			log.Fatalf("user %s: invalid role %q", row.Email, row.Role)
		}
		if existing, err := userRepo.GetByEmail(ctx, row.Email); err == nil {
			userIDs[row.Email] = existing.ID
			continue
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			log.Fatalf("user %s: %v", row.Email, err)
		}
		u := model.User{
			Username: row.Username,
			Email:    row.Email,
			Role:     row.Role,
			IsActive: true,
		}
		if row.DepartmentCode != "" {
			deptID, err := courseRepo.EnsureDepartment(ctx, row.DepartmentCode, row.DepartmentCode)
			if err != nil {
				log.Fatalf("department %s: %v", row.DepartmentCode, err)
			}
			u.DepartmentID = &deptID
		}
		if row.StudentNo != "" {
			no := row.StudentNo
			u.StudentNo = &no
		}
		if err := userRepo.Create(ctx, &u, row.Password, cfg.BcryptCost); err != nil {
			log.Fatalf("user %s: %v", row.Email, err)
		}
		userIDs[row.Email] = u.ID
		created++
	}
	log.Printf("users: %d new of %d", created, len(users))

	courses, err := readCSV[courseRow](dir + "/courses.csv")
	if err != nil {
		log.Fatalf("courses.csv: %v", err)
	}
	created = 0
	for _, row := range courses {
		if _, err := courseRepo.CourseByCode(ctx, row.Code); err == nil {
			continue
		} else if !errors.Is(err, schedule.ErrCourseNotFound) {
			log.Fatalf("course %s: %v", row.Code, err)
		}
		deptID, err := courseRepo.EnsureDepartment(ctx, row.DepartmentCode, row.DepartmentCode)
		if err != nil {
			log.Fatalf("department %s: %v", row.DepartmentCode, err)
		}
		instructorID, ok := userIDs[row.InstructorEmail]
		if !ok {
			log.Fatalf("course %s: unknown instructor %s", row.Code, row.InstructorEmail)
		}
		course := model.Course{
			Code:         row.Code,
			Name:         row.Name,
			DepartmentID: deptID,
			InstructorID: instructorID,
			Credits:      row.Credits,
			Semester:     row.Semester,
		}
		if err := courseRepo.Create(ctx, &course); err != nil {
			log.Fatalf("course %s: %v", row.Code, err)
		}
		created++
	}
	log.Printf("courses: %d new of %d", created, len(courses))
}
