package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// UpdateStatusInput carries a requested status transition.
type UpdateStatusInput struct {
	Status enums.OrderStatus
}

// AddPaymentInput records one payment against an order. ActorIsAdmin
// distinguishes the staff-side path from the customer-side path: staff
// payments on a fully settled placed/processing order advance it to paid.
type AddPaymentInput struct {
	Method    enums.PaymentMethod
	Amount    decimal.Decimal
	Reference *string
	// ActorUserID is set on the customer path; the order must belong to it.
	ActorUserID  *uuid.UUID
	ActorIsAdmin bool
}

// OrderFilters narrows order listings.
type OrderFilters struct {
	UserID        *uuid.UUID
	Status        *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
}

// OrderList pairs a page of orders with its pagination metadata.
type OrderList struct {
	Orders     []models.Order    `json:"orders"`
	Pagination pagination.Result `json:"pagination"`
}
