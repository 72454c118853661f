package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// ClientService records services rendered to a client: the line items,
// discount, payment ledger and lifecycle status. Voided records keep their
// data but reject all further mutation.
type ClientService struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID       uuid.UUID           `gorm:"column:client_id;type:uuid;not null;index" json:"client_id"`
	DateRendered   time.Time           `gorm:"column:date_rendered;not null;index" json:"date_rendered"`
	DateCompleted  *time.Time          `gorm:"column:date_completed" json:"date_completed,omitempty"`
	DateCancelled  *time.Time          `gorm:"column:date_cancelled" json:"date_cancelled,omitempty"`
	Status         enums.ServiceStatus `gorm:"column:status;not null;default:'pending';index" json:"status"`
	Lines          []ServiceLine       `gorm:"foreignKey:ClientServiceID;constraint:OnDelete:CASCADE" json:"service_rendered"`
	TotalAmount    decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null;default:0" json:"total_amount"`
	DiscountAmount decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0" json:"discount_amount"`
	Payments       []ServicePayment    `gorm:"foreignKey:ClientServiceID;constraint:OnDelete:CASCADE" json:"payment"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;not null;default:'unpaid'" json:"payment_status"`
	ReferenceCode  *string             `gorm:"column:reference_code" json:"reference_code,omitempty"`
	Notes          *string             `gorm:"column:notes" json:"notes,omitempty"`
	CreatedBy      uuid.UUID           `gorm:"column:created_by;type:uuid;not null" json:"created_by"`
	IsVoid         bool                `gorm:"column:is_void;not null;default:false;index" json:"is_void"`
	VoidReason     *string             `gorm:"column:void_reason" json:"void_reason,omitempty"`
	Version        int64               `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// AmountPaid sums the payment ledger.
func (cs ClientService) AmountPaid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range cs.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// ServiceLine is one rendered service with its commission splits.
type ServiceLine struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientServiceID uuid.UUID           `gorm:"column:client_service_id;type:uuid;not null;index" json:"-"`
	ServiceID       uuid.UUID           `gorm:"column:service_id;type:uuid;not null" json:"service_id"`
	Amount          decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Commissions     []ServiceCommission `gorm:"foreignKey:ServiceLineID;constraint:OnDelete:CASCADE" json:"person_assigned"`
	Notes           *string             `gorm:"column:notes" json:"notes,omitempty"`
}

// ServiceCommission assigns a percentage of one line to an employee.
type ServiceCommission struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceLineID        uuid.UUID       `gorm:"column:service_line_id;type:uuid;not null;index" json:"-"`
	EmployeeID           uuid.UUID       `gorm:"column:employee_id;type:uuid;not null" json:"employee_id"`
	PercentageCommission decimal.Decimal `gorm:"column:percentage_commission;type:numeric(5,2);not null" json:"percentage_commission"`
}

// ServicePayment is one entry in a client-service payment ledger.
type ServicePayment struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientServiceID uuid.UUID           `gorm:"column:client_service_id;type:uuid;not null;index" json:"-"`
	TypeOfPayment   enums.PaymentMethod `gorm:"column:type_of_payment;not null" json:"type_of_payment"`
	Amount          decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	ReferenceNumber *string             `gorm:"column:reference_number" json:"reference_number,omitempty"`
	DatePaid        time.Time           `gorm:"column:date_paid;not null" json:"date_paid"`
}
