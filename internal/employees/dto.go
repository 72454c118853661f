package employees

import (
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// CreateEmployeeInput carries the fields required to open an employee record.
type CreateEmployeeInput struct {
	UserID       uuid.UUID
	Branch       string
	TIN          string
	DateHired    *time.Time
	JobPositions []JobPositionInput
	Credentials  []CredentialInput
}

// UpdateEmployeeInput applies partial updates; nil leaves a field untouched.
type UpdateEmployeeInput struct {
	TIN         *string
	DateRetired *time.Time
}

// JobPositionInput is the payload for one position-history entry.
type JobPositionInput struct {
	Title       string
	Entity      string
	DateStarted *time.Time
	DateEnded   *time.Time
	IsActive    *bool
}

// CredentialInput is the payload for one credential entry.
type CredentialInput struct {
	CredentialType string
	Value          string
	AcquireOnDate  *time.Time
	ExpireOnDate   *time.Time
	IsActive       *bool
}

// EmployeeList pairs a page of employees with its pagination metadata.
type EmployeeList struct {
	Employees  []models.Employee `json:"employees"`
	Pagination pagination.Result `json:"pagination"`
}
