package models

import (
	"time"

	"github.com/campus-rooms/booking-service/internal/timerange"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// InactiveStatuses are the statuses that release a room slot. Bookings in any
// other status count against the no-overlap invariant.
var InactiveStatuses = []BookingStatus{StatusCancelled, StatusRejected}

type Booking struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	RoomID         uint          `gorm:"not null;index" json:"room_id"`
	OrganizationID uint          `gorm:"not null" json:"organization_id"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	StartTime      time.Time     `gorm:"not null" json:"start_time"`
	EndTime        time.Time     `gorm:"not null" json:"end_time"`
	Purpose        string        `gorm:"not null" json:"purpose"`
	Remark         string        `json:"remark"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Room         *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (b *Booking) Interval() timerange.Range {
	return timerange.New(b.StartTime, b.EndTime)
}
