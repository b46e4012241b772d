package router // exam and enrollment route registration

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-scheduler/internal/handler"
	"github.com/iliyamo/exam-scheduler/internal/middleware"
	"github.com/iliyamo/exam-scheduler/internal/model"
)

// RegisterExams registers the exam scheduling and enrollment endpoints.
// Every route requires a valid token and a resolvable active user; write
// routes additionally restrict by role.  The response cache sits behind
// LoadUser so every cached listing is bound to one principal.  Note the
// static segments ("mine", "check-conflicts") are registered alongside
// the :id parameter routes; echo matches static paths first.
func RegisterExams(e *echo.Echo, x *handler.ExamHandler, en *handler.EnrollmentHandler, users middleware.UserSource, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/exams")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.LoadUser(users))
	if cache != nil {
		g.Use(cache)
	}

	staff := middleware.RequireRole(model.RoleAdmin, model.RoleInstructor)
	students := middleware.RequireRole(model.RoleStudent)

	// Reads: every authenticated role, scoped by schedule.ScopeFor.
	g.GET("", x.ListExams)
	g.GET("/mine", x.MyExams)
	g.GET("/:id", x.GetExam)

	// Writes: instructors (own courses) and admins.
	g.POST("", x.CreateExam, staff)
	g.PUT("/:id", x.UpdateExam, staff)
	g.PATCH("/:id", x.UpdateExam, staff)
	g.DELETE("/:id", x.DeleteExam, staff)

	// Probing a slot writes nothing, so any authenticated role may ask.
	g.POST("/check-conflicts", x.CheckConflicts)

	// Enrollment: students manage their own seat, staff read the roster.
	g.POST("/:id/enrollments", en.Enroll, students)
	g.DELETE("/:id/enrollments", en.Unenroll, students)
	g.GET("/:id/enrollments", en.ListEnrollments, staff)
}
