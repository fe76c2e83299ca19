package middleware

import (
	"net/http"

	"github.com/campus-rooms/booking-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error echo sees as a dto.ErrorResponse, so
// handlers can return plain echo.HTTPErrors and still produce the service's
// JSON error shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
