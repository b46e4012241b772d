package middleware

// identity.go resolves the authenticated principal into a full user record.
// JWTAuth only proves who the caller is; visibility scoping additionally
// needs the caller's role and department as currently stored, so LoadUser
// fetches the row on each request rather than trusting stale token claims.

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-scheduler/internal/model"
	"github.com/iliyamo/exam-scheduler/internal/repository"
)

// CurrentUserKey is the context key under which LoadUser stores the
// resolved *model.User.
const CurrentUserKey = "current_user"

// UserSource resolves account records for the identity middleware.  It
// is satisfied by *repository.UserRepo.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// LoadUser returns a middleware that looks up the authenticated user by the
// "user_id" value JWTAuth placed in context.  Requests from unknown or
// deactivated accounts are rejected with 401 even when the token itself is
// still valid.
func LoadUser(users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("user_id").(string)
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token subject"})
			}
			u, err := users.GetByID(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve user"})
			}
			if !u.IsActive {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account deactivated"})
			}
			c.Set(CurrentUserKey, u)
			return next(c)
		}
	}
}

// CurrentUser retrieves the user stored by LoadUser, or nil when the route
// is not behind the identity middleware.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(CurrentUserKey).(*model.User)
	return u
}
