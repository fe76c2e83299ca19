package models

import "time"

type RuleAction string

const (
	ActionApprove RuleAction = "approve"
	ActionReject  RuleAction = "reject"
)

func (a RuleAction) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// AutoApprovalRule decides a booking's status at creation time. Every scoping
// field is optional; a nil field matches any candidate. A rule with all
// scoping fields nil matches every booking.
//
// StartHour and EndHour are "HH:MM" clock strings compared against the
// candidate's start time. The window does not wrap past midnight: a
// 22:00-06:00 rule matches nothing, because no clock string satisfies both
// bounds at once.
type AutoApprovalRule struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	OrganizationID *uint      `json:"organization_id"`
	RoomID         *uint      `json:"room_id"`
	UserID         *uint      `json:"user_id"`
	MaxDuration    *int       `json:"max_duration"`
	StartHour      *string    `gorm:"type:varchar(5)" json:"start_hour"`
	EndHour        *string    `gorm:"type:varchar(5)" json:"end_hour"`
	Action         RuleAction `gorm:"type:varchar(10);not null;default:'approve'" json:"action"`
	Active         bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Room         *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
