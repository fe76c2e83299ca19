package models

import "time"

// Session is a server-side login session. Tokens are issued elsewhere; this
// service only resolves them to users.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
