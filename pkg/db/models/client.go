package models

import (
	"time"

	"github.com/google/uuid"
)

// Client wraps a user with business-client bookkeeping. A user can hold at
// most one client record and never both a client and an employee record.
type Client struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	ClientCode  string       `gorm:"column:client_code;not null;uniqueIndex" json:"client_code"`
	DateCreated time.Time    `gorm:"column:date_created;not null" json:"date_created"`
	Notes       *string      `gorm:"column:notes" json:"notes,omitempty"`
	Occupations []Occupation `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"occupation"`
	IsDeleted   bool         `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	Version     int64        `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Occupation is an owned child record on a client.
type Occupation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"column:client_id;type:uuid;not null;index" json:"-"`
	Position    string    `gorm:"column:position;not null" json:"position"`
	CompanyName string    `gorm:"column:company_name;not null" json:"company_name"`
	Address     *string   `gorm:"column:address" json:"address,omitempty"`
	YearJoined  *string   `gorm:"column:year_joined" json:"year_joined,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}
