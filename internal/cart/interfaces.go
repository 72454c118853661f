package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
)

// Repository defines persistence for carts and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	UpsertItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error
	// MarkCheckedOutVersioned flips an active cart to checked_out only when
	// the stored version still matches; a stale version returns
	// ErrVersionConflict.
	MarkCheckedOutVersioned(ctx context.Context, cartID uuid.UUID, version int64) error
}

// Service exposes the shopping cart flow.
type Service interface {
	GetActiveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*models.Cart, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
}
