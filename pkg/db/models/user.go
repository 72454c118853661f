package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName    string     `gorm:"column:first_name;not null;default:''" json:"first_name"`
	LastName     string     `gorm:"column:last_name;not null;default:''" json:"last_name"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	Address      *string    `gorm:"column:address" json:"address,omitempty"`
	DateOfBirth  *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender       *string    `gorm:"column:gender" json:"gender,omitempty"`
	IsAdmin      bool       `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	IsDeleted    bool       `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// FullName joins the name parts for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
