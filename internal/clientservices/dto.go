package clientservices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// CommissionInput assigns a share of one line to an employee.
type CommissionInput struct {
	EmployeeID uuid.UUID
	Percentage decimal.Decimal
}

// LineInput is one rendered service. A nil Amount snapshots the catalog
// price at record time.
type LineInput struct {
	ServiceID   uuid.UUID
	Amount      *decimal.Decimal
	Notes       *string
	Commissions []CommissionInput
}

// CreateRecordInput opens a service record for a client.
type CreateRecordInput struct {
	ClientID       uuid.UUID
	DateRendered   *time.Time
	Lines          []LineInput
	DiscountAmount decimal.Decimal
	ReferenceCode  *string
	Notes          *string
	CreatedBy      uuid.UUID
}

// UpdateRecordInput mutates an open record. Lines may only change while the
// record is still pending; discount, reference code and notes stay editable
// until the record is voided.
type UpdateRecordInput struct {
	Lines          []LineInput
	DiscountAmount *decimal.Decimal
	ReferenceCode  *string
	Notes          *string
}

// PaymentInput records one payment against a service record.
type PaymentInput struct {
	Method    enums.PaymentMethod
	Amount    decimal.Decimal
	Reference *string
}

// RecordFilters narrows record listings.
type RecordFilters struct {
	ClientID *uuid.UUID
	Status   *enums.ServiceStatus
	IsVoid   *bool
}

// RecordList pairs a page of records with its pagination metadata.
type RecordList struct {
	Records    []models.ClientService `json:"client_services"`
	Pagination pagination.Result      `json:"pagination"`
}
