package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Account   string    `gorm:"uniqueIndex;not null" json:"account"`
	Name      string    `gorm:"not null" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status    bool      `gorm:"not null;default:true" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organizations []Organization `gorm:"many2many:user_organizations" json:"organizations,omitempty"`
}
