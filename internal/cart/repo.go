package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// ErrVersionConflict signals that the cart changed under the caller between
// read and checkout.
var ErrVersionConflict = errors.New("cart version conflict")

type repository struct {
	base repo.Base
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := repo.Active(r.base.DB(ctx)).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, enums.CartStatusActive).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.base.DB(ctx).Create(cart).Error
}

func (r *repository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.base.DB(ctx).Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkCheckedOutVersioned(ctx context.Context, cartID uuid.UUID, version int64) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Cart{}).
		Where("id = ? AND status = ? AND version = ?", cartID, enums.CartStatusActive, version).
		UpdateColumns(map[string]any{
			"status":  enums.CartStatusCheckedOut,
			"version": version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
