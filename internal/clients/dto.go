package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// CreateClientInput carries the fields required to open a client record.
type CreateClientInput struct {
	UserID      uuid.UUID
	Branch      string
	DateCreated *time.Time
	Notes       *string
	Occupations []OccupationInput
}

// UpdateClientInput applies partial updates; nil leaves a field untouched.
type UpdateClientInput struct {
	Notes *string
}

// OccupationInput is the payload for an occupation child entry.
type OccupationInput struct {
	Position    string
	CompanyName string
	Address     *string
	YearJoined  *string
	IsActive    *bool
}

// ClientList pairs a page of clients with its pagination metadata.
type ClientList struct {
	Clients    []models.Client   `json:"clients"`
	Pagination pagination.Result `json:"pagination"`
}
