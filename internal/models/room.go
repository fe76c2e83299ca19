package models

import "time"

type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
