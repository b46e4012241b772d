package main // Entry point package

import (
	"log" // Logging library

	_ "github.com/joho/godotenv/autoload" // Load .env before config reads the environment
	"github.com/labstack/echo/v4"       // Echo web framework
	"github.com/rs/cors"                // CORS as a standard net/http middleware

	"github.com/iliyamo/exam-scheduler/internal/config"
	"github.com/iliyamo/exam-scheduler/internal/database"
	"github.com/iliyamo/exam-scheduler/internal/directory"
	"github.com/iliyamo/exam-scheduler/internal/handler"
	"github.com/iliyamo/exam-scheduler/internal/middleware"
	"github.com/iliyamo/exam-scheduler/internal/queue"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/router"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories over the single DB handle.
	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	examRepo := repository.NewExamRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)

	// The scheduling core reads rooms and courses through short-TTL cache
	// decorators; exams are always read fresh.
	rooms := directory.NewCachedRooms(roomRepo, cfg.DirectoryTTL)
	courses := directory.NewCachedCourses(courseRepo, cfg.DirectoryTTL)
	detector := schedule.NewConflictDetector(examRepo)
	validator := schedule.NewValidator(rooms, detector)
	scanner := schedule.NewAvailabilityScanner(rooms, detector)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	examHandler := handler.NewExamHandler(courses, rooms, examRepo, validator)
	enrollmentHandler := handler.NewEnrollmentHandler(examRepo, enrollmentRepo)
	roomHandler := handler.NewRoomHandler(roomRepo, examRepo, scanner, rooms)
	courseHandler := handler.NewCourseHandler(courseRepo, courses)

	e := echo.New()
	e.HideBanner = true

	// CORS first so even rate-limited responses carry the headers.
	e.Use(echo.WrapMiddleware(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler))

	// Redis-backed rate limiting and response caching.  A nil client
	// (Redis down at boot) degrades both to pass-through.  The limiter is
	// global so login shares the budget; the cache is handed to the route
	// groups and registered behind LoadUser, because cached listings are
	// visibility scoped and keyed per principal.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	respCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, userRepo, cfg.JWTSecret)
	router.RegisterExams(e, examHandler, enrollmentHandler, userRepo, cfg.JWTSecret, respCache)
	router.RegisterRooms(e, roomHandler, userRepo, cfg.JWTSecret, respCache)
	router.RegisterCourses(e, courseHandler, userRepo, cfg.JWTSecret, respCache)

	// Schedule-change consumer: appends one log line per event, standing in
	// for the external notification collaborator.  It reconnects on its own;
	// a terminal error only loses the log, never scheduling.
	go func() {
		if err := queue.StartScheduleConsumer(); err != nil {
			log.Printf("schedule consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
