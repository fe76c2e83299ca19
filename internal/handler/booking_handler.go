package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campus-rooms/booking-service/internal/dto"
	"github.com/campus-rooms/booking-service/internal/middleware"
	"github.com/campus-rooms/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RoomID == 0 || req.OrganizationID == 0 || req.Date == "" || len(req.TimeRange) != 2 || req.Purpose == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	start, err := parseSlotTime(req.Date, req.TimeRange[0])
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date or start time")
	}
	end, err := parseSlotTime(req.Date, req.TimeRange[1])
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date or end time")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), user, service.CreateBookingInput{
		RoomID:         req.RoomID,
		OrganizationID: req.OrganizationID,
		Start:          start,
		End:            end,
		Purpose:        req.Purpose,
		Remark:         req.Remark,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTimeConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrRoomNotFound),
			errors.Is(err, service.ErrRoomUnavailable),
			errors.Is(err, service.ErrStartInPast),
			errors.Is(err, service.ErrInvalidTimeRange):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingView(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}

	bookings, err := h.svc.ListUserBookings(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingView, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingView(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), user, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotBookingOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingView(booking))
}

func (h *BookingHandler) UpdateBookingStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBookingStatus(c.Request().Context(), user, uint(id), req.Status, req.Remark)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotBookingOwner),
			errors.Is(err, service.ErrCancelOnly):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTimeConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingView(booking))
}

// parseSlotTime combines a "2006-01-02" date and a "15:04" clock string into
// a local timestamp, the same composition the booking form submits.
func parseSlotTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
