package dto

import "github.com/campus-rooms/booking-service/internal/models"

type CreateBookingRequest struct {
	RoomID         uint     `json:"room_id" validate:"required"`
	OrganizationID uint     `json:"organization_id" validate:"required"`
	Date           string   `json:"date" validate:"required"`
	TimeRange      []string `json:"time_range" validate:"required,len=2"`
	Purpose        string   `json:"purpose" validate:"required"`
	Remark         string   `json:"remark"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required"`
	Remark *string              `json:"remark"`
}

type CreateRuleRequest struct {
	Name           string            `json:"name" validate:"required"`
	OrganizationID *uint             `json:"organization_id"`
	RoomID         *uint             `json:"room_id"`
	UserID         *uint             `json:"user_id"`
	MaxDuration    *int              `json:"max_duration"`
	StartHour      *string           `json:"start_hour"`
	EndHour        *string           `json:"end_hour"`
	Action         models.RuleAction `json:"action"`
}

// UpdateRuleRequest carries a partial update. Nil fields are left unchanged;
// a zero id or duration clears the corresponding scope.
type UpdateRuleRequest struct {
	Name           *string            `json:"name"`
	OrganizationID *uint              `json:"organization_id"`
	RoomID         *uint              `json:"room_id"`
	UserID         *uint              `json:"user_id"`
	MaxDuration    *int               `json:"max_duration"`
	StartHour      *string            `json:"start_hour"`
	EndHour        *string            `json:"end_hour"`
	Action         *models.RuleAction `json:"action"`
	Active         *bool              `json:"active"`
}
