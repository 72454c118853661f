package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// ErrVersionConflict signals that a versioned update lost the race and the
// caller is holding a stale copy of the order.
var ErrVersionConflict = errors.New("order version conflict")

type repository struct {
	base repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.base.DB(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := repo.Active(r.base.DB(ctx)).
		Preload("Items").
		Preload("Payments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("paid_at ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		q := repo.Active(r.base.DB(ctx)).Model(&models.Order{})
		if filters.UserID != nil {
			q = q.Where("user_id = ?", *filters.UserID)
		}
		if filters.Status != nil {
			q = q.Where("status = ?", *filters.Status)
		}
		if filters.PaymentStatus != nil {
			q = q.Where("payment_status = ?", *filters.PaymentStatus)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := query().
		Preload("Items").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	return r.List(ctx, params, OrderFilters{UserID: &userID})
}

func (r *repository) UpdateStateVersioned(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) error {
	payload := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		payload[k] = v
	}
	payload["version"] = version + 1

	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", id, version).
		UpdateColumns(payload)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *repository) AddPayment(ctx context.Context, payment *models.OrderPayment) error {
	return r.base.DB(ctx).Create(payment).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
