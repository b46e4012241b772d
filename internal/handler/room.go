package handler // handler package contains room directory and availability handlers

import (
	"errors"   // sentinel error matching
	"net/http" // http defines status codes
	"strconv"  // strconv parses query parameters
	"strings"  // strings helps with trimming

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/iliyamo/exam-scheduler/internal/directory"
	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/repository"
	"github.com/iliyamo/exam-scheduler/internal/schedule"
)

// RoomHandler bundles the room directory, the availability scanner and the
// exam store behind the room endpoints.  Cache holds the decorator wired in
// front of the validator's directory so admin edits can invalidate it.
type RoomHandler struct {
	Rooms   *repository.RoomRepo
	Exams   *repository.ExamRepo
	Scanner *schedule.AvailabilityScanner
	Cache   *directory.CachedRooms
}

// NewRoomHandler constructs a RoomHandler and panics if any dependency is nil.
func NewRoomHandler(rooms *repository.RoomRepo, exams *repository.ExamRepo, scanner *schedule.AvailabilityScanner, cache *directory.CachedRooms) *RoomHandler {
	if rooms == nil || exams == nil || scanner == nil || cache == nil {
		panic("nil dependency passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Exams: exams, Scanner: scanner, Cache: cache}
}

// ListRooms handles GET /v1/rooms with building, min_capacity and
// is_available filters.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	var f repository.RoomFilters
	f.BuildingCode = strings.TrimSpace(c.QueryParam("building"))
	if v := c.QueryParam("min_capacity"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		f.MinCapacity = uint32(n)
	}
	if v := c.QueryParam("is_available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid is_available"})
		}
		f.Available = &b
	}

	rooms, err := h.Rooms.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms, "total_count": len(rooms)})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.Rooms.RoomByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	return c.JSON(http.StatusOK, room)
}

// RoomSchedule handles GET /v1/rooms/:id/schedule and lists every exam in
// the room, optionally bounded by date_from/date_to.
func (h *RoomHandler) RoomSchedule(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.Rooms.RoomByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}

	var from, to string
	if v := c.QueryParam("date_from"); v != "" {
		if from, err = schedule.NormalizeDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if to, err = schedule.NormalizeDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
		}
	}

	exams, err := h.Exams.ListByRoom(c.Request().Context(), id, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room": room, "exams": exams})
}

// CheckAvailability handles POST /v1/rooms/check-availability: scan the
// room directory for rooms free during a candidate slot.
func (h *RoomHandler) CheckAvailability(c echo.Context) error {
	var body struct {
		Date          string  `json:"date"`
		StartTime     string  `json:"start_time"`
		EndTime       string  `json:"end_time"`
		MinCapacity   uint32  `json:"min_capacity"`
		ExcludeExamID *uint64 `json:"exclude_exam_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := schedule.NormalizeDate(strings.TrimSpace(body.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	start, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.StartTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, expected HH:MM"})
	}
	end, err := schedule.NormalizeTimeOfDay(strings.TrimSpace(body.EndTime))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, expected HH:MM"})
	}
	if end <= start {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	free, err := h.Scanner.AvailableRooms(c.Request().Context(), date, start, end, body.ExcludeExamID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability scan failed"})
	}
	if body.MinCapacity > 0 {
		filtered := make([]model.Room, 0, len(free))
		for _, r := range free {
			if r.Capacity >= body.MinCapacity {
				filtered = append(filtered, r)
			}
		}
		free = filtered
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available_rooms": free,
		"total_count":     len(free),
	})
}

// UpdateRoom handles PATCH /v1/rooms/:id (admin only): capacity,
// availability and notes edits.  Identity fields are immutable.  A
// successful edit flushes the directory cache so the scheduling core sees
// the change immediately.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Capacity    *uint32 `json:"capacity"`
		IsAvailable *bool   `json:"is_available"`
		Notes       *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Capacity == nil && body.IsAvailable == nil && body.Notes == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}
	if body.Capacity != nil && *body.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}

	if err := h.Rooms.UpdateAdmin(c.Request().Context(), id, body.Capacity, body.IsAvailable, body.Notes); err != nil {
		if errors.Is(err, schedule.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.Cache.Invalidate()

	fresh, err := h.Rooms.RoomByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load room"})
	}
	return c.JSON(http.StatusOK, fresh)
}
