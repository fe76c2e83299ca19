package middleware

import (
	"net/http"
	"strings"

	"github.com/campus-rooms/booking-service/internal/models"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/labstack/echo/v4"
)

const userContextKey = "auth.user"

// Auth resolves the session token from the Authorization header and stores
// the authenticated user on the request context. Requests without a valid
// session are rejected with 401.
func Auth(sessions repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			user, err := sessions.ResolveUser(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin allows only admin-or-above principals through. Must run after
// Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
		}
		if !user.Role.AtLeast(models.RoleAdmin) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// SetCurrentUser injects a principal directly; handler tests use it to skip
// the session lookup.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
