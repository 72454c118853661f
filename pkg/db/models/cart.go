package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// Cart holds a user's in-progress purchase. Each user has at most one
// active cart; checkout freezes it as checked_out and the next access
// creates a fresh one.
type Cart struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Items       []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null;default:0" json:"total_amount"`
	Status      enums.CartStatus `gorm:"column:status;not null;default:'active';index" json:"status"`
	IsDeleted   bool             `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	Version     int64            `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// CartItem is one product line with a price snapshot taken at add time.
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;index" json:"-"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null;default:0" json:"subtotal"`
}

// Recalculate refreshes every line subtotal and the cart total. Call it
// before each persist.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.Subtotal = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.Subtotal)
	}
	c.TotalAmount = total
}
