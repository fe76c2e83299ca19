package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campus-rooms/booking-service/internal/dto"
	"github.com/campus-rooms/booking-service/internal/repository"
	"github.com/campus-rooms/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	roomRepo repository.RoomRepository
	svc      service.BookingService
}

func NewRoomHandler(roomRepo repository.RoomRepository, svc service.BookingService) *RoomHandler {
	return &RoomHandler{roomRepo: roomRepo, svc: svc}
}

func (h *RoomHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/:id/bookings", h.GetRoomSchedule)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.roomRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoomSchedule returns the room's occupied slots (pending and confirmed
// bookings) so callers can pick a free one.
func (h *RoomHandler) GetRoomSchedule(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	bookings, err := h.svc.ListRoomSchedule(c.Request().Context(), uint(roomID))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ScheduleEntry, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToScheduleEntry(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}
