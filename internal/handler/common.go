package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types
	"strings" // strings provides splitting helpers for room references

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/exam-scheduler/internal/middleware" // middleware resolves the authenticated user
	"github.com/iliyamo/exam-scheduler/internal/model"      // model holds domain entities
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentUser returns the user resolved by the identity middleware, or nil
// when the route is not behind it.
func currentUser(c echo.Context) *model.User {
	return middleware.CurrentUser(c)
}

// splitRoomRef splits a human readable room reference like "ENG-101" into
// its building code and room name parts.  Room names may themselves
// contain dashes, so only the first dash separates.
func splitRoomRef(ref string) (buildingCode, name string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(ref), "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseQueryID parses a numeric query parameter value.
func parseQueryID(v string) (uint64, error) {
	return strconv.ParseUint(v, 10, 64)
}
