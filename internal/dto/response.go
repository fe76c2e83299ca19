package dto

import (
	"time"

	"github.com/campus-rooms/booking-service/internal/models"
)

// BookingView is the booking as shown to callers, with the room,
// organization and user identities resolved to display names.
type BookingView struct {
	ID               uint                 `json:"id"`
	RoomID           uint                 `json:"room_id"`
	RoomName         string               `json:"room_name"`
	OrganizationID   uint                 `json:"organization_id"`
	OrganizationName string               `json:"organization_name"`
	UserID           uint                 `json:"user_id"`
	UserName         string               `json:"user_name"`
	StartTime        time.Time            `json:"start_time"`
	EndTime          time.Time            `json:"end_time"`
	Purpose          string               `json:"purpose"`
	Status           models.BookingStatus `json:"status"`
	Remark           string               `json:"remark,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

func ToBookingView(b *models.Booking) BookingView {
	v := BookingView{
		ID:             b.ID,
		RoomID:         b.RoomID,
		OrganizationID: b.OrganizationID,
		UserID:         b.UserID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Purpose:        b.Purpose,
		Status:         b.Status,
		Remark:         b.Remark,
		CreatedAt:      b.CreatedAt,
	}
	if b.Room != nil {
		v.RoomName = b.Room.Name
	}
	if b.Organization != nil {
		v.OrganizationName = b.Organization.Name
	}
	if b.User != nil {
		v.UserName = b.User.Name
	}
	return v
}

// ScheduleEntry is one occupied slot in a room's schedule. It carries no
// booker details; the schedule is visible to every authenticated user.
type ScheduleEntry struct {
	ID        uint                 `json:"id"`
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time"`
	Status    models.BookingStatus `json:"status"`
}

func ToScheduleEntry(b *models.Booking) ScheduleEntry {
	return ScheduleEntry{
		ID:        b.ID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
	}
}

type RuleResponse struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	OrganizationID   *uint             `json:"organization_id"`
	OrganizationName string            `json:"organization_name,omitempty"`
	RoomID           *uint             `json:"room_id"`
	RoomName         string            `json:"room_name,omitempty"`
	UserID           *uint             `json:"user_id"`
	UserName         string            `json:"user_name,omitempty"`
	MaxDuration      *int              `json:"max_duration"`
	StartHour        *string           `json:"start_hour"`
	EndHour          *string           `json:"end_hour"`
	Action           models.RuleAction `json:"action"`
	Active           bool              `json:"active"`
	CreatedAt        time.Time         `json:"created_at"`
}

func ToRuleResponse(r *models.AutoApprovalRule) RuleResponse {
	resp := RuleResponse{
		ID:             r.ID,
		Name:           r.Name,
		OrganizationID: r.OrganizationID,
		RoomID:         r.RoomID,
		UserID:         r.UserID,
		MaxDuration:    r.MaxDuration,
		StartHour:      r.StartHour,
		EndHour:        r.EndHour,
		Action:         r.Action,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
	}
	if r.Organization != nil {
		resp.OrganizationName = r.Organization.Name
	}
	if r.Room != nil {
		resp.RoomName = r.Room.Name
	}
	if r.User != nil {
		resp.UserName = r.User.Name
	}
	return resp
}

type ErrorResponse struct {
	Message string `json:"message"`
}
