package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus-rooms/booking-service/internal/models"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type mockSessionRepo struct {
	resolveFn func(ctx context.Context, token string) (*models.User, error)
}

func (m *mockSessionRepo) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	return m.resolveFn(ctx, token)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuth_ValidToken(t *testing.T) {
	sessions := &mockSessionRepo{
		resolveFn: func(ctx context.Context, token string) (*models.User, error) {
			assert.Equal(t, "tok-123", token)
			return &models.User{ID: 3, Name: "Li Ming", Role: models.RoleUser}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	h := Auth(sessions)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return okHandler(c)
	})

	assert.NoError(t, h(c))
	if assert.NotNil(t, seen) {
		assert.Equal(t, uint(3), seen.ID)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(&mockSessionRepo{})(okHandler)
	err := h(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	sessions := &mockSessionRepo{
		resolveFn: func(ctx context.Context, token string) (*models.User, error) {
			return nil, repository.ErrSessionInvalid
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(sessions)(okHandler)
	err := h(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	tests := []struct {
		role models.Role
		code int
	}{
		{models.RoleUser, http.StatusForbidden},
		{models.RoleAdmin, http.StatusOK},
		{models.RoleSuperAdmin, http.StatusOK},
		{models.RoleRoot, http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/rules", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetCurrentUser(c, &models.User{ID: 1, Role: tt.role})

		err := RequireAdmin(okHandler)(c)
		if tt.code == http.StatusOK {
			assert.NoError(t, err, "role %s", tt.role)
		} else {
			he, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tt.code, he.Code, "role %s", tt.role)
		}
	}
}
