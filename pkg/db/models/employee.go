package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee wraps a user with employment bookkeeping.
type Employee struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	EmployeeCode string        `gorm:"column:employee_code;not null;uniqueIndex" json:"employee_code"`
	DateHired    time.Time     `gorm:"column:date_hired;not null" json:"date_hired"`
	DateRetired  *time.Time    `gorm:"column:date_retired" json:"date_retired,omitempty"`
	TIN          string        `gorm:"column:tax_identification_number;not null;uniqueIndex" json:"tax_identification_number"`
	JobPositions []JobPosition `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"job_position"`
	Credentials  []Credential  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"credentials"`
	IsDeleted    bool          `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	Version      int64         `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// JobPosition is one entry in an employee's position history.
type JobPosition struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index" json:"-"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Entity      string     `gorm:"column:entity;not null" json:"entity"`
	DateStarted time.Time  `gorm:"column:date_started;not null" json:"date_started"`
	DateEnded   *time.Time `gorm:"column:date_ended" json:"date_ended,omitempty"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// Credential is a licence or certification held by an employee. Expired
// credentials flip is_active to false the next time they are read.
type Credential struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index" json:"-"`
	CredentialType string     `gorm:"column:credential_type;not null" json:"credential_type"`
	Value          string     `gorm:"column:value;not null" json:"value"`
	AcquireOnDate  time.Time  `gorm:"column:acquire_on_date;not null" json:"acquire_on_date"`
	ExpireOnDate   *time.Time `gorm:"column:expire_on_date" json:"expire_on_date,omitempty"`
	IsActive       bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// IsExpired reports whether the credential's expiry has passed at the given
// instant. Credentials without an expiry never expire.
func (c Credential) IsExpired(now time.Time) bool {
	return c.ExpireOnDate != nil && c.ExpireOnDate.Before(now)
}
