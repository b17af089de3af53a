package models

import (
	"time"
)

type User struct {
	ID          string   `json:"id" gorm:"primaryKey;size:255"`
	Role        UserRole `json:"role" gorm:"not null;size:20;index"`
	FirstName   string   `json:"first_name" gorm:"not null;size:100"`
	LastName    string   `json:"last_name" gorm:"not null;size:100"`
	PhoneNumber string   `json:"phone_number" gorm:"size:30"`
	Email       string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Institution string   `json:"institution" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name the way profile headers show it.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
