package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// Order carries the frozen copy of a cart plus its payment ledger.
// Line items are immutable once the order exists; payments are append-only.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:'placed';index" json:"status"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:'unpaid';index" json:"payment_status"`
	Payments      []OrderPayment      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment"`
	IsDeleted     bool                `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	Version       int64               `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// AmountPaid sums the payment ledger.
func (o Order) AmountPaid() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range o.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}

// OrderItem is the checkout-time snapshot of one cart line.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
}

// OrderPayment is one entry in an order's payment ledger.
type OrderPayment struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID         uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	TypeOfPayment   enums.PaymentMethod `gorm:"column:type_of_payment;not null" json:"type_of_payment"`
	Amount          decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	ReferenceNumber *string             `gorm:"column:reference_number" json:"reference_number,omitempty"`
	PaidAt          time.Time           `gorm:"column:paid_at;not null" json:"paid_at"`
}
