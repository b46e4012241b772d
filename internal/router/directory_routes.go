package router // room and course directory route registration

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-scheduler/internal/handler"
	"github.com/iliyamo/exam-scheduler/internal/middleware"
	"github.com/iliyamo/exam-scheduler/internal/model"
)

// RegisterRooms registers the room directory and availability endpoints.
// Reads are open to every authenticated role; capacity and availability
// edits are admin only.  The response cache sits behind LoadUser so
// cached directory reads are bound to one principal.
func RegisterRooms(e *echo.Echo, r *handler.RoomHandler, users middleware.UserSource, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/rooms")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.LoadUser(users))
	if cache != nil {
		g.Use(cache)
	}

	g.GET("", r.ListRooms)
	g.GET("/:id", r.GetRoom)
	g.GET("/:id/schedule", r.RoomSchedule)
	g.POST("/check-availability", r.CheckAvailability)
	g.PATCH("/:id", r.UpdateRoom, middleware.RequireRole(model.RoleAdmin))
}

// RegisterCourses registers the read-only course directory endpoints.
func RegisterCourses(e *echo.Echo, h *handler.CourseHandler, users middleware.UserSource, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/courses")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.LoadUser(users))
	if cache != nil {
		g.Use(cache)
	}

	g.GET("", h.ListCourses)
	g.GET("/:code", h.GetCourse)
}
